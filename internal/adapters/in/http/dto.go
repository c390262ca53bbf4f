package http

import (
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/application/usecases/queries"
)

// loginRequest is the credentials payload for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string    `json:"token"`
	PrincipalID uuid.UUID `json:"principal_id"`
	Role        string    `json:"role"`
}

type registerDriverRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	NNI         string   `json:"nni"`
	VehicleType string   `json:"vehicle_type"`
	Sectors     []string `json:"sectors"`
	Password    string   `json:"password"`
}

type registerEnterpriseRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	PartnerRef string `json:"partner_ref"`
	Password   string `json:"password"`
}

type rejectDriverRequest struct {
	Reason string `json:"reason"`
}

type updateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type fcmTokenRequest struct {
	Token string `json:"token"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

type createOrderRequest struct {
	ExternalRef   string  `json:"external_ref"`
	SectorType    string  `json:"sector_type"`
	ReceiverName  string  `json:"receiver_name"`
	ReceiverPhone string  `json:"receiver_phone"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLong    float64 `json:"pickup_long"`
	DropLat       float64 `json:"drop_lat"`
	DropLong      float64 `json:"drop_long"`

	RequireOTP       *bool `json:"require_otp,omitempty"`
	RequireSignature *bool `json:"require_signature,omitempty"`
	RequirePhoto     *bool `json:"require_photo,omitempty"`
	RequireBiometric *bool `json:"require_biometric,omitempty"`

	BatchSize          int        `json:"batch_size,omitempty"`
	PreAssignedDriver  *uuid.UUID `json:"pre_assigned_driver,omitempty"`
}

type createOrderResponse struct {
	OrderID   uuid.UUID `json:"order_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	OTP       string    `json:"otp,omitempty"`
}

type dispatchRequest struct {
	Force bool `json:"force"`
}

type dispatchResponse struct {
	Confirmed bool `json:"confirmed"`
	BatchSent bool `json:"batch_sent"`
}

type deliverRequest struct {
	OTP               string   `json:"otp,omitempty"`
	Signature         []byte   `json:"signature,omitempty"`
	SignatureFilename string   `json:"signature_filename,omitempty"`
	Photo             []byte   `json:"photo,omitempty"`
	PhotoFilename     string   `json:"photo_filename,omitempty"`
	BiometricScore    *float64 `json:"biometric_score,omitempty"`
}

type deliverResponse struct {
	TotalAmount float64 `json:"total_amount"`
	InvoiceRef  string  `json:"invoice_ref,omitempty"`
}

type failRequest struct {
	Reason string `json:"reason"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type cashPaymentResponse struct {
	PaymentState string `json:"payment_state"`
}

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

type orderListItem struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	SectorType    string    `json:"sector_type"`
	SenderName    string    `json:"sender_name"`
	ReceiverName  string    `json:"receiver_name"`
	ReceiverPhone string    `json:"receiver_phone"`
	PickupLat     float64   `json:"pickup_lat"`
	PickupLong    float64   `json:"pickup_long"`
	DropLat       float64   `json:"drop_lat"`
	DropLong      float64   `json:"drop_long"`
	DistanceKM    float64   `json:"distance_km"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toOrderList(items []queries.OrderListItem) []orderListItem {
	out := make([]orderListItem, 0, len(items))
	for _, item := range items {
		out = append(out, orderListItem{
			ID:            item.ID,
			Reference:     item.Reference,
			SectorType:    item.SectorType,
			SenderName:    item.SenderName,
			ReceiverName:  item.ReceiverName,
			ReceiverPhone: item.ReceiverPhone,
			PickupLat:     item.PickupLat,
			PickupLong:    item.PickupLong,
			DropLat:       item.DropLat,
			DropLong:      item.DropLong,
			DistanceKM:    item.DistanceKM,
			Status:        item.Status,
			CreatedAt:     item.CreatedAt,
		})
	}
	return out
}

type conditionSummaryPayload struct {
	OTPIssued      bool     `json:"otp_issued"`
	OTPVerified    bool     `json:"otp_verified"`
	HasSignature   bool     `json:"has_signature"`
	HasPhoto       bool     `json:"has_photo"`
	BiometricScore *float64 `json:"biometric_score,omitempty"`
	Validated      bool     `json:"validated"`
}

type billingSummaryPayload struct {
	DistanceKM  float64 `json:"distance_km"`
	BaseTariff  float64 `json:"base_tariff"`
	ExtraFee    float64 `json:"extra_fee"`
	TotalAmount float64 `json:"total_amount"`
	InvoiceRef  string  `json:"invoice_ref,omitempty"`
	State       string  `json:"state"`
}

type orderDetailsResponse struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	ExternalRef   string    `json:"external_ref,omitempty"`
	SectorType    string    `json:"sector_type"`
	SenderID      uuid.UUID `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	ReceiverName  string    `json:"receiver_name"`
	ReceiverPhone string    `json:"receiver_phone"`

	PickupLat  float64 `json:"pickup_lat"`
	PickupLong float64 `json:"pickup_long"`
	DropLat    float64 `json:"drop_lat"`
	DropLong   float64 `json:"drop_long"`
	DistanceKM float64 `json:"distance_km"`

	RequireOTP       bool `json:"require_otp"`
	RequireSignature bool `json:"require_signature"`
	RequirePhoto     bool `json:"require_photo"`
	RequireBiometric bool `json:"require_biometric"`

	Status           string     `json:"status"`
	AssignedDriverID *uuid.UUID `json:"assigned_driver_id,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CancelReason     string     `json:"cancel_reason,omitempty"`

	NotifiedDrivers   int        `json:"notified_drivers"`
	DispatchStartTime *time.Time `json:"dispatch_start_time,omitempty"`
	FirstDispatchTime *time.Time `json:"first_dispatch_time,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	Condition *conditionSummaryPayload `json:"condition,omitempty"`
	Billing   *billingSummaryPayload   `json:"billing,omitempty"`
}

func toOrderDetails(resp queries.GetOrderQueryResponse) orderDetailsResponse {
	out := orderDetailsResponse{
		ID:                resp.ID,
		Reference:         resp.Reference,
		ExternalRef:       resp.ExternalRef,
		SectorType:        resp.SectorType,
		SenderID:          resp.SenderID,
		SenderName:        resp.SenderName,
		ReceiverName:      resp.ReceiverName,
		ReceiverPhone:     resp.ReceiverPhone,
		PickupLat:         resp.PickupLat,
		PickupLong:        resp.PickupLong,
		DropLat:           resp.DropLat,
		DropLong:          resp.DropLong,
		DistanceKM:        resp.DistanceKM,
		RequireOTP:        resp.RequireOTP,
		RequireSignature:  resp.RequireSignature,
		RequirePhoto:      resp.RequirePhoto,
		RequireBiometric:  resp.RequireBiometric,
		Status:            resp.Status,
		AssignedDriverID:  resp.AssignedDriverID,
		FailureReason:     resp.FailureReason,
		CancelReason:      resp.CancelReason,
		NotifiedDrivers:   resp.NotifiedDrivers,
		DispatchStartTime: resp.DispatchStartTime,
		FirstDispatchTime: resp.FirstDispatchTime,
		CreatedAt:         resp.CreatedAt,
	}
	if resp.Condition != nil {
		out.Condition = &conditionSummaryPayload{
			OTPIssued:      resp.Condition.OTPIssued,
			OTPVerified:    resp.Condition.OTPVerified,
			HasSignature:   resp.Condition.HasSignature,
			HasPhoto:       resp.Condition.HasPhoto,
			BiometricScore: resp.Condition.BiometricScore,
			Validated:      resp.Condition.Validated,
		}
	}
	if resp.Billing != nil {
		out.Billing = &billingSummaryPayload{
			DistanceKM:  resp.Billing.DistanceKM,
			BaseTariff:  resp.Billing.BaseTariff,
			ExtraFee:    resp.Billing.ExtraFee,
			TotalAmount: resp.Billing.TotalAmount,
			InvoiceRef:  resp.Billing.InvoiceRef,
			State:       resp.Billing.State,
		}
	}
	return out
}
