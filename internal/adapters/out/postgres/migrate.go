package postgres

import (
	"gorm.io/gorm"

	"smartdelivery/internal/adapters/out/postgres/billingrepo"
	"smartdelivery/internal/adapters/out/postgres/conditionrepo"
	"smartdelivery/internal/adapters/out/postgres/driverrepo"
	"smartdelivery/internal/adapters/out/postgres/enterpriserepo"
	"smartdelivery/internal/adapters/out/postgres/orderrepo"
	"smartdelivery/internal/adapters/out/postgres/sectorrepo"
)

// Migrate creates or updates the schema for every persisted aggregate.
// Runs at startup before the first request is served.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&conditionrepo.ConditionDTO{},
		&billingrepo.BillingDTO{},
		&sectorrepo.SectorRuleDTO{},
		&enterpriserepo.EnterpriseDTO{},
	)
}
