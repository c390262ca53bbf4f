package ports

import "context"

// UnitOfWorkFactory creates a fresh UnitOfWork per request or sweep
// iteration, keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transactional boundary of one business operation. Every
// repository obtained from it runs inside the transaction opened by Begin,
// so a row locked via GetForUpdate stays locked until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverRepository() DriverRepository
	ConditionRepository() ConditionRepository
	BillingRepository() BillingRepository
	SectorRuleRepository() SectorRuleRepository
	EnterpriseRepository() EnterpriseRepository
}
