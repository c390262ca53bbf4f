package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

// DefaultBatchSize is the number of drivers notified per dispatch batch when
// the order does not override it.
const DefaultBatchSize = 10

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Requirements holds the per-order proof-of-delivery flags. They default from
// the sector rule at creation and may be overridden per order.
type Requirements struct {
	OTP       bool
	Signature bool
	Photo     bool
	Biometric bool
}

// Any reports whether at least one proof-of-delivery requirement is active.
func (r Requirements) Any() bool {
	return r.OTP || r.Signature || r.Photo || r.Biometric
}

// Order is the aggregate root of the dispatch domain. It owns the order
// lifecycle and the dispatch bookkeeping, and enforces these invariants:
//
//   - assignedDriverID is non-nil iff status ∈ {assigned, on_way, delivered, failed}
//   - currentBatch is empty whenever status is not dispatching
//   - dispatchedDrivers ⊇ currentBatch at all times
//   - distanceKM is recomputed deterministically from the two coordinates
//
// All mutation goes through the transition methods below; the struct uses
// private fields so the invariants cannot be bypassed.
type Order struct {
	id          uuid.UUID
	reference   string
	externalRef string
	sectorType  string

	senderID      uuid.UUID
	senderName    string
	receiverName  string
	receiverPhone string

	pickup     kernel.GeoPoint
	drop       kernel.GeoPoint
	distanceKM float64

	assignedDriverID *uuid.UUID
	status           Status
	requirements     Requirements
	failureReason    string
	cancelReason     string

	batchSize         int
	dispatchedDrivers []uuid.UUID
	currentBatch      []uuid.UUID
	dispatchStartTime *time.Time
	firstDispatchTime *time.Time

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a draft order. The great-circle distance is derived from
// the pickup and drop points; requirement flags are expected to be already
// defaulted from the sector rule by the caller.
func NewOrder(
	id uuid.UUID,
	reference string,
	externalRef string,
	sectorType string,
	senderID uuid.UUID,
	senderName string,
	receiverName string,
	receiverPhone string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	requirements Requirements,
	batchSize int,
) (*Order, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("reference")
	}
	if sectorType == "" {
		return nil, errs.NewValueIsRequiredError("sectorType")
	}
	if senderID == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("senderID")
	}
	if receiverPhone == "" {
		return nil, errs.NewValueIsRequiredError("receiverPhone")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Order{
		id:            id,
		reference:     reference,
		externalRef:   externalRef,
		sectorType:    sectorType,
		senderID:      senderID,
		senderName:    senderName,
		receiverName:  receiverName,
		receiverPhone: receiverPhone,
		pickup:        pickup,
		drop:          drop,
		distanceKM:    pickup.DistanceKMTo(drop),
		status:        StatusDraft,
		requirements:  requirements,
		batchSize:     batchSize,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation validation. The distance is still recomputed from the coordinates
// so a stale stored value can never diverge from them.
func RestoreOrder(
	id uuid.UUID,
	reference string,
	externalRef string,
	sectorType string,
	senderID uuid.UUID,
	senderName string,
	receiverName string,
	receiverPhone string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	assignedDriverID *uuid.UUID,
	status Status,
	requirements Requirements,
	failureReason string,
	cancelReason string,
	batchSize int,
	dispatchedDrivers []uuid.UUID,
	currentBatch []uuid.UUID,
	dispatchStartTime *time.Time,
	firstDispatchTime *time.Time,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Order{
		id:                id,
		reference:         reference,
		externalRef:       externalRef,
		sectorType:        sectorType,
		senderID:          senderID,
		senderName:        senderName,
		receiverName:      receiverName,
		receiverPhone:     receiverPhone,
		pickup:            pickup,
		drop:              drop,
		distanceKM:        pickup.DistanceKMTo(drop),
		assignedDriverID:  assignedDriverID,
		status:            status,
		requirements:      requirements,
		failureReason:     failureReason,
		cancelReason:      cancelReason,
		batchSize:         batchSize,
		dispatchedDrivers: dispatchedDrivers,
		currentBatch:      currentBatch,
		dispatchStartTime: dispatchStartTime,
		firstDispatchTime: firstDispatchTime,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the order was constructed through NewOrder or
// RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() uuid.UUID           { return o.id }
func (o *Order) Reference() string       { return o.reference }
func (o *Order) ExternalRef() string     { return o.externalRef }
func (o *Order) SectorType() string      { return o.sectorType }
func (o *Order) SenderID() uuid.UUID     { return o.senderID }
func (o *Order) SenderName() string      { return o.senderName }
func (o *Order) ReceiverName() string    { return o.receiverName }
func (o *Order) ReceiverPhone() string   { return o.receiverPhone }
func (o *Order) Pickup() kernel.GeoPoint { return o.pickup }
func (o *Order) Drop() kernel.GeoPoint   { return o.drop }
func (o *Order) DistanceKM() float64     { return o.distanceKM }
func (o *Order) Status() Status          { return o.status }
func (o *Order) FailureReason() string   { return o.failureReason }
func (o *Order) CancelReason() string    { return o.cancelReason }
func (o *Order) BatchSize() int          { return o.batchSize }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }

// Requirements returns the active proof-of-delivery flags.
func (o *Order) Requirements() Requirements { return o.requirements }

// AssignedDriver returns the bound driver's ID, or nil when unassigned.
func (o *Order) AssignedDriver() *uuid.UUID {
	if o.assignedDriverID == nil {
		return nil
	}
	id := *o.assignedDriverID
	return &id
}

// IsAssignedTo reports whether the given driver is the one bound to the
// order.
func (o *Order) IsAssignedTo(driverID uuid.UUID) bool {
	return o.assignedDriverID != nil && *o.assignedDriverID == driverID
}

// DispatchedDrivers returns every driver ever notified for this order,
// accumulated across batches.
func (o *Order) DispatchedDrivers() []uuid.UUID {
	out := make([]uuid.UUID, len(o.dispatchedDrivers))
	copy(out, o.dispatchedDrivers)
	return out
}

// CurrentBatch returns the drivers in the most recent notification batch.
func (o *Order) CurrentBatch() []uuid.UUID {
	out := make([]uuid.UUID, len(o.currentBatch))
	copy(out, o.currentBatch)
	return out
}

// WasNotified reports whether the driver appears in any batch ever sent for
// this order. Acceptance is deliberately open to every notified driver, not
// only the current batch.
func (o *Order) WasNotified(driverID uuid.UUID) bool {
	for _, id := range o.dispatchedDrivers {
		if id == driverID {
			return true
		}
	}
	return false
}

// DispatchStartTime returns the timestamp of the current batch, or nil if no
// batch has been sent.
func (o *Order) DispatchStartTime() *time.Time {
	return copyTime(o.dispatchStartTime)
}

// FirstDispatchTime returns the timestamp of the very first batch, used for
// the global dispatch timeout.
func (o *Order) FirstDispatchTime() *time.Time {
	return copyTime(o.firstDispatchTime)
}

// StartDispatching records a new notification batch: the current batch is
// replaced with exactly the given set, its members are added to the
// accumulated dispatched set, the batch window restarts at now, and the order
// moves to dispatching. The first call also stamps the global dispatch start.
func (o *Order) StartDispatching(batch []uuid.UUID, now time.Time) error {
	if !o.status.CanDispatch() {
		return errs.NewInvalidStateError("dispatch", o.status.String())
	}
	if len(batch) == 0 {
		return errs.NewValueIsRequiredError("batch")
	}

	o.currentBatch = make([]uuid.UUID, len(batch))
	copy(o.currentBatch, batch)

	for _, id := range batch {
		if !o.WasNotified(id) {
			o.dispatchedDrivers = append(o.dispatchedDrivers, id)
		}
	}

	start := now.UTC()
	o.dispatchStartTime = &start
	if o.firstDispatchTime == nil {
		first := start
		o.firstDispatchTime = &first
	}

	o.status = StatusDispatching
	return nil
}

// ResetDispatch wipes all dispatch bookkeeping and returns the order to
// draft, releasing any assigned driver. Used by the force-dispatch path.
func (o *Order) ResetDispatch() error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("reset dispatch", o.status.String())
	}
	o.dispatchedDrivers = nil
	o.currentBatch = nil
	o.dispatchStartTime = nil
	o.firstDispatchTime = nil
	o.assignedDriverID = nil
	o.status = StatusDraft
	return nil
}

// Assign binds a driver to the order and moves it to assigned, clearing the
// current batch. Legal from draft (pre-assigned or confirmed driver) and
// dispatching (accepted during dispatch).
func (o *Order) Assign(driverID uuid.UUID) error {
	if driverID == uuid.Nil {
		return errs.NewValueIsRequiredError("driverID")
	}
	if o.status != StatusDraft && o.status != StatusDispatching {
		return errs.NewInvalidStateError("assign", o.status.String())
	}

	id := driverID
	o.assignedDriverID = &id
	o.currentBatch = nil
	o.status = StatusAssigned
	return nil
}

// ConfirmAssignment promotes an order that already carries a driver binding
// (pre-assigned at creation or restored from storage) to assigned without
// running a new dispatch batch.
func (o *Order) ConfirmAssignment() error {
	if o.assignedDriverID == nil {
		return errs.NewValueIsRequiredError("assignedDriver")
	}
	if o.status != StatusDraft && o.status != StatusDispatching {
		return errs.NewInvalidStateError("confirm assignment", o.status.String())
	}
	o.currentBatch = nil
	o.status = StatusAssigned
	return nil
}

// StartDelivery moves an assigned order to on_way. Only the assigned driver
// may start the delivery.
func (o *Order) StartDelivery(actorID uuid.UUID) error {
	if !o.IsAssignedTo(actorID) {
		return errs.NewNotAuthorizedError("order is not assigned to this driver")
	}
	if o.status != StatusAssigned {
		return errs.NewInvalidStateError("start delivery", o.status.String())
	}
	o.status = StatusOnWay
	return nil
}

// MarkDelivered completes the order. The caller is responsible for running
// the proof-of-delivery validation first.
func (o *Order) MarkDelivered() error {
	if o.status != StatusOnWay {
		return errs.NewInvalidStateError("deliver", o.status.String())
	}
	o.status = StatusDelivered
	return nil
}

// Fail records that the assigned driver could not complete the delivery.
func (o *Order) Fail(actorID uuid.UUID, reason string) error {
	if !o.IsAssignedTo(actorID) {
		return errs.NewNotAuthorizedError("order is not assigned to this driver")
	}
	if !o.status.CanFail() {
		return errs.NewInvalidStateError("fail", o.status.String())
	}
	o.status = StatusFailed
	o.failureReason = reason
	return nil
}

// Cancel withdraws the order, releasing any assigned driver and clearing the
// current batch. Only draft, dispatching and assigned orders can be
// cancelled; the returned error carries the blocking status otherwise.
func (o *Order) Cancel(reason string) error {
	if !o.status.CanCancel() {
		return errs.NewInvalidStateError("cancel", o.status.String())
	}
	o.status = StatusCancelled
	o.cancelReason = reason
	o.assignedDriverID = nil
	o.currentBatch = nil
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
