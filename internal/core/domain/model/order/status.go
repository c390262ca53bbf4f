package order

import (
	"fmt"

	"smartdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions:
//
//	Draft ──> Dispatching ──> Assigned ──> OnWay ──> Delivered
//	  │            │              │          │
//	  │            │              ├──────────┴─────> Failed
//	  └────────────┴──────────────┴─────────────────> Cancelled
//
// Draft and Dispatching may also go straight to Assigned (pre-assigned
// driver confirmed, or a dispatched driver accepts). Delivered, Failed and
// Cancelled are terminal.
type Status string

const (
	// StatusDraft is the initial status of a newly created order.
	StatusDraft Status = "draft"

	// StatusDispatching indicates the order is being offered to driver
	// batches and is waiting for an acceptance.
	StatusDispatching Status = "dispatching"

	// StatusAssigned indicates a driver has been bound to the order.
	StatusAssigned Status = "assigned"

	// StatusOnWay indicates the assigned driver started the delivery.
	StatusOnWay Status = "on_way"

	// StatusDelivered is the terminal success status.
	StatusDelivered Status = "delivered"

	// StatusFailed is the terminal status for a delivery the assigned
	// driver could not complete.
	StatusFailed Status = "failed"

	// StatusCancelled is the terminal status for orders withdrawn by the
	// enterprise or cancelled by the dispatch timeout.
	StatusCancelled Status = "cancelled"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusDraft:       {},
		StatusDispatching: {},
		StatusAssigned:    {},
		StatusOnWay:       {},
		StatusDelivered:   {},
		StatusFailed:      {},
		StatusCancelled:   {},
	}
}

// Validate checks that the status is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or API input.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// CanDispatch reports whether a dispatch cycle may run or continue.
func (s Status) CanDispatch() bool {
	return s == StatusDraft || s == StatusDispatching
}

// CanCancel reports whether the order may still be withdrawn.
// Orders already on the road or in a terminal status cannot be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusDraft || s == StatusDispatching || s == StatusAssigned
}

// CanFail reports whether the assigned driver may report non-completion.
func (s Status) CanFail() bool {
	return s == StatusAssigned || s == StatusOnWay
}

func (s Status) String() string {
	return string(s)
}
