// Package postgres implements the persistence ports on GORM. A unit of work
// wraps one database transaction; every repository it hands out is bound to
// that transaction, so a command either commits all of its writes or none.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"smartdelivery/internal/adapters/out/postgres/billingrepo"
	"smartdelivery/internal/adapters/out/postgres/conditionrepo"
	"smartdelivery/internal/adapters/out/postgres/driverrepo"
	"smartdelivery/internal/adapters/out/postgres/enterpriserepo"
	"smartdelivery/internal/adapters/out/postgres/orderrepo"
	"smartdelivery/internal/adapters/out/postgres/sectorrepo"
	"smartdelivery/internal/core/ports"
)

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates the factory over an open GORM connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one transaction across all repositories.
// Begin is idempotent; Commit and Rollback close the transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling Begin on an already-open unit of work
// is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}
	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Rolling back an already-closed unit of
// work returns gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the bare connection when no
// transaction is open.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) ConditionRepository() ports.ConditionRepository {
	return conditionrepo.NewGormConditionRepository(uow.conn())
}

func (uow *GormUnitOfWork) BillingRepository() ports.BillingRepository {
	return billingrepo.NewGormBillingRepository(uow.conn())
}

func (uow *GormUnitOfWork) SectorRuleRepository() ports.SectorRuleRepository {
	return sectorrepo.NewGormSectorRuleRepository(uow.conn())
}

func (uow *GormUnitOfWork) EnterpriseRepository() ports.EnterpriseRepository {
	return enterpriserepo.NewGormEnterpriseRepository(uow.conn())
}
