package postgres

import (
	"context"

	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

func (f FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	return f.db.WithContext(ctx).Create(form).Error
}

func (f FormPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	if err := f.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}

	return &form, nil
}

func (f FormPostgreSQL) Update(ctx context.Context, form *models.Form) error {
	return f.db.WithContext(ctx).Save(form).Error
}

func (f FormPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := f.db.WithContext(ctx).Delete(&models.Form{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	var forms []*models.Form
	var total int64

	// apply filters first
	query := f.db.WithContext(ctx).Model(&models.Form{})
	query = f.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = f.applyPaginationAndSort(query, filters)

	if err := query.Find(&forms).Error; err != nil {
		return nil, 0, err
	}

	return forms, total, nil
}

func (f FormPostgreSQL) SetPublished(ctx context.Context, id uint, published bool) error {
	result := f.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f FormPostgreSQL) applyFilters(query *gorm.DB, filters repositories.FormFilters) *gorm.DB {
	if filters.Published != nil {
		query = query.Where("is_published = ?", *filters.Published)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

func (f FormPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.FormFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "updated_at", "created_at":
	default:
		sortBy = "created_at"
	}

	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
