package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/queries"
)

func TestToOrderDetails(t *testing.T) {
	score := 0.91
	resp := queries.GetOrderQueryResponse{
		ID:               uuid.New(),
		Reference:        "DEL-ABCD1234",
		SectorType:       "medical",
		SenderID:         uuid.New(),
		SenderName:       "Acme",
		ReceiverName:     "Jane Receiver",
		ReceiverPhone:    "+22240000000",
		DistanceKM:       12.5,
		RequireOTP:       true,
		RequireSignature: true,
		RequirePhoto:     true,
		RequireBiometric: true,
		Status:           "delivered",
		NotifiedDrivers:  3,
		CreatedAt:        time.Now().UTC(),
		Condition: &queries.ConditionSummary{
			OTPIssued:      true,
			OTPVerified:    true,
			HasSignature:   true,
			HasPhoto:       true,
			BiometricScore: &score,
			Validated:      true,
		},
		Billing: &queries.BillingSummary{
			DistanceKM:  12.5,
			BaseTariff:  200,
			ExtraFee:    150,
			TotalAmount: 350,
			InvoiceRef:  "INV-001",
			State:       "paid",
		},
	}

	out := toOrderDetails(resp)

	assert.True(t, out.RequireOTP)
	assert.True(t, out.RequireSignature)
	assert.True(t, out.RequirePhoto)
	assert.True(t, out.RequireBiometric)
	require.NotNil(t, out.Condition)
	assert.True(t, out.Condition.OTPIssued)
	require.NotNil(t, out.Billing)
	assert.Equal(t, 350.0, out.Billing.TotalAmount)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	for _, field := range []string{"require_otp", "require_signature", "require_photo", "require_biometric"} {
		assert.Equal(t, true, payload[field], field)
	}
}

func TestToOrderDetails_NoCompanionRecords(t *testing.T) {
	out := toOrderDetails(queries.GetOrderQueryResponse{
		ID:         uuid.New(),
		Reference:  "DEL-ABCD1234",
		SectorType: "standard",
		Status:     "draft",
	})

	assert.False(t, out.RequireOTP, "requirement flags come from the order, not the condition record")
	assert.Nil(t, out.Condition)
	assert.Nil(t, out.Billing)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Contains(t, payload, "require_otp", "flags are always present in the detail view")
	assert.NotContains(t, payload, "condition")
}
