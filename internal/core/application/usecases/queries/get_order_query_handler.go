package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"smartdelivery/internal/pkg/errs"
)

// GetOrderQueryHandler reads the full order view from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle loads the order row plus its condition and billing companions.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference,
			external_ref,
			sector_type,
			sender_id,
			sender_name,
			receiver_name,
			receiver_phone,
			pickup_lat,
			pickup_long,
			drop_lat,
			drop_long,
			distance_km,
			require_otp,
			require_signature,
			require_photo,
			require_biometric,
			status,
			assigned_driver_id,
			failure_reason,
			cancel_reason,
			COALESCE(array_length(dispatched_drivers, 1), 0),
			dispatch_start_time,
			first_dispatch_time,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row().Scan(
		&resp.ID,
		&resp.Reference,
		&resp.ExternalRef,
		&resp.SectorType,
		&resp.SenderID,
		&resp.SenderName,
		&resp.ReceiverName,
		&resp.ReceiverPhone,
		&resp.PickupLat,
		&resp.PickupLong,
		&resp.DropLat,
		&resp.DropLong,
		&resp.DistanceKM,
		&resp.RequireOTP,
		&resp.RequireSignature,
		&resp.RequirePhoto,
		&resp.RequireBiometric,
		&resp.Status,
		&resp.AssignedDriverID,
		&resp.FailureReason,
		&resp.CancelReason,
		&resp.NotifiedDrivers,
		&resp.DispatchStartTime,
		&resp.FirstDispatchTime,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.Condition, err = h.conditionSummary(ctx, query); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Billing, err = h.billingSummary(ctx, query); err != nil {
		return GetOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) conditionSummary(ctx context.Context, query GetOrderQuery) (*ConditionSummary, error) {
	var summary ConditionSummary
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			otp_value <> '',
			otp_verified,
			signature_file IS NOT NULL AND length(signature_file) > 0,
			photo IS NOT NULL AND length(photo) > 0,
			biometric_score,
			validated
		FROM delivery_conditions
		WHERE order_id = ?
	`, query.OrderID()).Row().Scan(
		&summary.OTPIssued,
		&summary.OTPVerified,
		&summary.HasSignature,
		&summary.HasPhoto,
		&summary.BiometricScore,
		&summary.Validated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (h GetOrderQueryHandler) billingSummary(ctx context.Context, query GetOrderQuery) (*BillingSummary, error) {
	var summary BillingSummary
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			distance_km,
			base_tariff,
			extra_fee,
			base_tariff + extra_fee,
			invoice_ref,
			state
		FROM billings
		WHERE order_id = ?
	`, query.OrderID()).Row().Scan(
		&summary.DistanceKM,
		&summary.BaseTariff,
		&summary.ExtraFee,
		&summary.TotalAmount,
		&summary.InvoiceRef,
		&summary.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
