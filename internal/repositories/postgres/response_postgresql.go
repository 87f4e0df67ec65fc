package postgres

import (
	"context"

	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

func (r ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, err
	}

	return &response, nil
}

func (r ResponsePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Response{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r ResponsePostgreSQL) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	var responses []*models.Response
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Response{}).Where("form_id = ?", formID)
	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("submitted_at desc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&responses).Error; err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (r ResponsePostgreSQL) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
