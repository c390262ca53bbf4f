package enterpriserepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartdelivery/internal/core/domain/model/enterprise"
	"smartdelivery/internal/pkg/errs"
)

// GormEnterpriseRepository implements ports.EnterpriseRepository on GORM.
type GormEnterpriseRepository struct {
	db *gorm.DB
}

// NewGormEnterpriseRepository creates the repository over the given
// connection.
func NewGormEnterpriseRepository(db *gorm.DB) *GormEnterpriseRepository {
	return &GormEnterpriseRepository{db: db}
}

// Add inserts a new sender account.
func (r *GormEnterpriseRepository) Add(ctx context.Context, e *enterprise.Enterprise) error {
	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the full record over the existing row.
func (r *GormEnterpriseRepository) Update(ctx context.Context, e *enterprise.Enterprise) error {
	dto := fromDomain(e)
	result := r.db.WithContext(ctx).Model(&EnterpriseDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("enterprise", dto.ID.String())
	}
	return nil
}

// Get retrieves a sender account by ID.
func (r *GormEnterpriseRepository) Get(ctx context.Context, id uuid.UUID) (*enterprise.Enterprise, error) {
	var dto EnterpriseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("enterprise", id.String())
		}
		return nil, err
	}
	return toDomain(dto), nil
}

// GetByEmail retrieves a sender account by login email.
func (r *GormEnterpriseRepository) GetByEmail(ctx context.Context, email string) (*enterprise.Enterprise, error) {
	var dto EnterpriseDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("enterprise", email)
		}
		return nil, err
	}
	return toDomain(dto), nil
}
