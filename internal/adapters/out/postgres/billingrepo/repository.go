package billingrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartdelivery/internal/core/domain/model/billing"
	"smartdelivery/internal/pkg/errs"
)

// GormBillingRepository implements ports.BillingRepository on GORM.
type GormBillingRepository struct {
	db *gorm.DB
}

// NewGormBillingRepository creates the repository over the given connection.
func NewGormBillingRepository(db *gorm.DB) *GormBillingRepository {
	return &GormBillingRepository{db: db}
}

// Add inserts a new billing row. The unique index on order_id backs the
// billing-once guarantee.
func (r *GormBillingRepository) Add(ctx context.Context, b *billing.Billing) error {
	dto := fromDomain(b)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the full record over the existing row.
func (r *GormBillingRepository) Update(ctx context.Context, b *billing.Billing) error {
	dto := fromDomain(b)
	result := r.db.WithContext(ctx).Model(&BillingDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("billing", dto.ID.String())
	}
	return nil
}

// GetByOrder retrieves the billing record for an order.
func (r *GormBillingRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*billing.Billing, error) {
	var dto BillingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billing", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto), nil
}
