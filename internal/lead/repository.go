package lead

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
)

// GormRepository backs the pipeline with the shared database handle.
type GormRepository struct{}

func NewGormRepository() *GormRepository {
	return &GormRepository{}
}

func (r *GormRepository) CreateLead(ctx context.Context, lead *model.Lead) error {
	return database.GetDB().WithContext(ctx).Create(lead).Error
}

// FeaturedBrochure returns the brochure offered after a gated
// submission: the featured one, or the first by display order.
func (r *GormRepository) FeaturedBrochure(ctx context.Context) (*model.Brochure, error) {
	var brochure model.Brochure
	err := database.GetDB().WithContext(ctx).
		Order("is_featured DESC, display_order ASC").
		First(&brochure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brochure, nil
}

func (r *GormRepository) UpdateDownloadCount(ctx context.Context, id uint, newCount uint) error {
	return database.GetDB().WithContext(ctx).
		Model(&model.Brochure{}).
		Where("id = ?", id).
		Update("download_count", newCount).Error
}
