package sectorrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartdelivery/internal/core/domain/model/sector"
	"smartdelivery/internal/pkg/errs"
)

// GormSectorRuleRepository implements ports.SectorRuleRepository on GORM.
type GormSectorRuleRepository struct {
	db *gorm.DB
}

// NewGormSectorRuleRepository creates the repository over the given
// connection.
func NewGormSectorRuleRepository(db *gorm.DB) *GormSectorRuleRepository {
	return &GormSectorRuleRepository{db: db}
}

// GetByType retrieves the rule for a sector type.
func (r *GormSectorRuleRepository) GetByType(ctx context.Context, sectorType string) (sector.Rule, error) {
	var dto SectorRuleDTO
	if err := r.db.WithContext(ctx).First(&dto, "sector_type = ?", sectorType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sector.Rule{}, errs.NewObjectNotFoundError("sector rule", sectorType)
		}
		return sector.Rule{}, err
	}
	return toDomain(dto), nil
}

// GetAll lists every configured rule.
func (r *GormSectorRuleRepository) GetAll(ctx context.Context) ([]sector.Rule, error) {
	var dtos []SectorRuleDTO
	if err := r.db.WithContext(ctx).Order("sector_type").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]sector.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, toDomain(dto))
	}
	return rules, nil
}

// Upsert inserts or replaces the rule for its sector type.
func (r *GormSectorRuleRepository) Upsert(ctx context.Context, rule sector.Rule) error {
	dto := fromDomain(rule)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sector_type"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// SeedDefaults inserts the built-in sector catalogue, skipping any sector an
// operator already configured. Safe to run on every startup.
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	for _, rule := range sector.DefaultRules() {
		dto := fromDomain(rule)
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sector_type"}},
				DoNothing: true,
			}).
			Create(&dto).Error
		if err != nil {
			return err
		}
	}
	return nil
}
