package postgres

import (
	"github.com/formforge/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	form     repositories.FormRepository
	response repositories.ResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		form:     NewFormPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Form() repositories.FormRepository {
	return r.form
}

func (r *repository) Response() repositories.ResponseRepository {
	return r.response
}
