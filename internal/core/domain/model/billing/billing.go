// Package billing holds the charge computed for a delivered order. Invoice
// and payment objects downstream of it are owned by the host ERP's
// accounting subsystem; this record only tracks the handle and the last
// observed payment state.
package billing

import (
	"time"

	"github.com/google/uuid"
)

// State mirrors the lifecycle of the downstream invoice. It is recomputed
// explicitly from gateway responses, never derived reactively.
type State string

const (
	StateDraft     State = "draft"
	StateInvoiced  State = "invoiced"
	StatePosted    State = "posted"
	StatePartial   State = "partial"
	StatePaid      State = "paid"
	StateCancelled State = "cancelled"
)

// Billing is the charge record created exactly once per delivered order.
type Billing struct {
	ID      uuid.UUID
	OrderID uuid.UUID

	DistanceKM float64
	BaseTariff float64
	ExtraFee   float64

	// InvoiceRef is the handle returned by the accounting collaborator,
	// empty while no invoice has been registered.
	InvoiceRef string
	State      State

	CreatedAt time.Time
}

// NewBilling creates a draft billing record for an order.
func NewBilling(orderID uuid.UUID, distanceKM, baseTariff, extraFee float64) *Billing {
	return &Billing{
		ID:         uuid.New(),
		OrderID:    orderID,
		DistanceKM: distanceKM,
		BaseTariff: baseTariff,
		ExtraFee:   extraFee,
		State:      StateDraft,
		CreatedAt:  time.Now().UTC(),
	}
}

// TotalAmount is the full charge: base tariff plus the distance fee.
func (b *Billing) TotalAmount() float64 {
	return b.BaseTariff + b.ExtraFee
}

// AttachInvoice records the accounting handle once an invoice exists.
func (b *Billing) AttachInvoice(ref string) {
	b.InvoiceRef = ref
	b.State = StateInvoiced
}

// SetState records the payment state reported by the accounting gateway.
func (b *Billing) SetState(state State) {
	b.State = state
}
