package conditionrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/pkg/errs"
)

// GormConditionRepository implements ports.ConditionRepository on GORM.
type GormConditionRepository struct {
	db *gorm.DB
}

// NewGormConditionRepository creates the repository over the given
// connection.
func NewGormConditionRepository(db *gorm.DB) *GormConditionRepository {
	return &GormConditionRepository{db: db}
}

// Add inserts a new condition row.
func (r *GormConditionRepository) Add(ctx context.Context, cond *condition.Condition) error {
	dto := fromDomain(cond)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the full record over the existing row.
func (r *GormConditionRepository) Update(ctx context.Context, cond *condition.Condition) error {
	dto := fromDomain(cond)
	result := r.db.WithContext(ctx).Model(&ConditionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("condition", dto.ID.String())
	}
	return nil
}

// GetByOrder retrieves the condition record for an order.
func (r *GormConditionRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*condition.Condition, error) {
	var dto ConditionDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("condition", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto), nil
}
