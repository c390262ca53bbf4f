package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrReviewDriverCommandIsNotConstructed is returned when a
// ReviewDriverCommand was not created via its constructor.
var ErrReviewDriverCommandIsNotConstructed = errors.New(
	"ReviewDriverCommand must be created via NewReviewDriverCommand constructor",
)

// ReviewDecision is the outcome of a registration review.
type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

// ReviewDriverCommand resolves a pending driver registration. Approval makes
// the driver verified and available; rejection records the reason and keeps
// them out of every candidate pool.
type ReviewDriverCommand struct {
	driverID uuid.UUID
	decision ReviewDecision
	reason   string

	isConstructed bool
}

// NewReviewDriverCommand creates a registration review. Rejections require
// a reason.
func NewReviewDriverCommand(driverID uuid.UUID, decision ReviewDecision, reason string) (ReviewDriverCommand, error) {
	if driverID == uuid.Nil {
		return ReviewDriverCommand{}, errors.New("driverID is required")
	}
	if decision != ReviewApprove && decision != ReviewReject {
		return ReviewDriverCommand{}, errors.New("decision must be approve or reject")
	}
	if decision == ReviewReject && reason == "" {
		return ReviewDriverCommand{}, errors.New("reason is required for rejection")
	}
	return ReviewDriverCommand{
		driverID:      driverID,
		decision:      decision,
		reason:        reason,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewDriverCommand) Validate() error {
	if !c.isConstructed {
		return ErrReviewDriverCommandIsNotConstructed
	}
	return nil
}

// DriverID returns the driver under review.
func (c ReviewDriverCommand) DriverID() uuid.UUID { return c.driverID }

// Decision returns the review outcome.
func (c ReviewDriverCommand) Decision() ReviewDecision { return c.decision }

// Reason returns the rejection reason, empty for approvals.
func (c ReviewDriverCommand) Reason() string { return c.reason }
