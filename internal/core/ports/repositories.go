// Package ports defines the contracts between the dispatch core and its
// external collaborators: persistence, push notifications and the host ERP's
// accounting subsystem.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/billing"
	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/enterprise"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/model/sector"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by ID.
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order holding a row-level lock for the
	// remainder of the transaction. Concurrent accept calls against the
	// same order serialize on this lock.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// GetDispatchingOlderThan returns orders in dispatching status whose
	// current batch window started before the given threshold. Used by the
	// timeout sweep.
	GetDispatchingOlderThan(ctx context.Context, threshold time.Time) ([]*order.Order, error)
}

// DriverRepository persists driver aggregates.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id uuid.UUID) (*driver.Driver, error)
	GetByEmail(ctx context.Context, email string) (*driver.Driver, error)

	// GetAllDispatchable returns every available and verified driver,
	// the raw candidate pool for batch selection.
	GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error)
}

// ConditionRepository persists the proof-of-delivery record of an order.
type ConditionRepository interface {
	Add(ctx context.Context, cond *condition.Condition) error
	Update(ctx context.Context, cond *condition.Condition) error

	// GetByOrder returns the condition for an order, or an
	// errs.ObjectNotFoundError when none exists yet.
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*condition.Condition, error)
}

// BillingRepository persists billing records.
type BillingRepository interface {
	Add(ctx context.Context, b *billing.Billing) error
	Update(ctx context.Context, b *billing.Billing) error
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*billing.Billing, error)
}

// SectorRuleRepository reads the per-sector configuration. Absence of a rule
// is reported as an errs.ObjectNotFoundError; callers fall back to the engine
// defaults.
type SectorRuleRepository interface {
	GetByType(ctx context.Context, sectorType string) (sector.Rule, error)
	GetAll(ctx context.Context) ([]sector.Rule, error)
	Upsert(ctx context.Context, rule sector.Rule) error
}

// EnterpriseRepository persists sender accounts.
type EnterpriseRepository interface {
	Add(ctx context.Context, e *enterprise.Enterprise) error
	Update(ctx context.Context, e *enterprise.Enterprise) error
	Get(ctx context.Context, id uuid.UUID) (*enterprise.Enterprise, error)
	GetByEmail(ctx context.Context, email string) (*enterprise.Enterprise, error)
}
