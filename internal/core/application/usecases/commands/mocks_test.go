package commands_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/domain/model/billing"
	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/enterprise"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/model/sector"
	"smartdelivery/internal/core/ports"
)

// The handlers share one unit-of-work contract, so the test doubles live in
// one place instead of being redeclared per handler test.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDispatchingOlderThan(ctx context.Context, threshold time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id uuid.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByEmail(ctx context.Context, email string) (*driver.Driver, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockConditionRepository struct{ mock.Mock }

func (m *MockConditionRepository) Add(ctx context.Context, c *condition.Condition) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConditionRepository) Update(ctx context.Context, c *condition.Condition) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConditionRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*condition.Condition, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*condition.Condition), args.Error(1)
}

type MockBillingRepository struct{ mock.Mock }

func (m *MockBillingRepository) Add(ctx context.Context, b *billing.Billing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillingRepository) Update(ctx context.Context, b *billing.Billing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillingRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*billing.Billing, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Billing), args.Error(1)
}

type MockSectorRuleRepository struct{ mock.Mock }

func (m *MockSectorRuleRepository) GetByType(ctx context.Context, sectorType string) (sector.Rule, error) {
	args := m.Called(ctx, sectorType)
	return args.Get(0).(sector.Rule), args.Error(1)
}

func (m *MockSectorRuleRepository) GetAll(ctx context.Context) ([]sector.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sector.Rule), args.Error(1)
}

func (m *MockSectorRuleRepository) Upsert(ctx context.Context, rule sector.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

type MockEnterpriseRepository struct{ mock.Mock }

func (m *MockEnterpriseRepository) Add(ctx context.Context, e *enterprise.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnterpriseRepository) Update(ctx context.Context, e *enterprise.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnterpriseRepository) Get(ctx context.Context, id uuid.UUID) (*enterprise.Enterprise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enterprise.Enterprise), args.Error(1)
}

func (m *MockEnterpriseRepository) GetByEmail(ctx context.Context, email string) (*enterprise.Enterprise, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enterprise.Enterprise), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUnitOfWork) ConditionRepository() ports.ConditionRepository {
	return m.Called().Get(0).(ports.ConditionRepository)
}

func (m *MockUnitOfWork) BillingRepository() ports.BillingRepository {
	return m.Called().Get(0).(ports.BillingRepository)
}

func (m *MockUnitOfWork) SectorRuleRepository() ports.SectorRuleRepository {
	return m.Called().Get(0).(ports.SectorRuleRepository)
}

func (m *MockUnitOfWork) EnterpriseRepository() ports.EnterpriseRepository {
	return m.Called().Get(0).(ports.EnterpriseRepository)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (ports.SendReport, error) {
	args := m.Called(ctx, tokens, title, body, data)
	return args.Get(0).(ports.SendReport), args.Error(1)
}

type MockAccountingGateway struct{ mock.Mock }

func (m *MockAccountingGateway) CreateInvoice(ctx context.Context, req ports.InvoiceRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAccountingGateway) PostInvoice(ctx context.Context, invoiceRef string) error {
	args := m.Called(ctx, invoiceRef)
	return args.Error(0)
}

func (m *MockAccountingGateway) RegisterCashPayment(ctx context.Context, invoiceRef string) (ports.PaymentState, error) {
	args := m.Called(ctx, invoiceRef)
	return args.Get(0).(ports.PaymentState), args.Error(1)
}

// factoryFor wires a mock unit of work through the handlers' factory
// contract.
func factoryFor(uow *MockUnitOfWork) commands.UoWFactory {
	return commands.FuncUoWFactory(func() commands.UoW { return uow })
}
