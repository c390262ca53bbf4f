// Package condition holds the proof-of-delivery record that accompanies an
// order, and the evidence a driver submits when completing a delivery.
package condition

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// MinBiometricScore is the lowest biometric match score accepted as valid
// proof of the receiver's identity.
const MinBiometricScore = 0.7

// OTPLength is the number of digits in a server-generated OTP.
const OTPLength = 6

// Condition is the one-to-one companion of an order. It stores the
// server-generated OTP and every piece of evidence the driver supplied, plus
// the overall validated flag. It is created at order creation when the order
// has active requirements, or lazily on the first delivery attempt.
type Condition struct {
	ID      uuid.UUID
	OrderID uuid.UUID

	OTPValue    string
	OTPVerified bool

	SignatureFile     []byte
	SignatureFilename string

	Photo         []byte
	PhotoFilename string

	// BiometricScore is nil until a score has been recorded.
	BiometricScore *float64

	Validated bool
}

// NewCondition creates an empty condition record for an order.
func NewCondition(orderID uuid.UUID) *Condition {
	return &Condition{
		ID:      uuid.New(),
		OrderID: orderID,
	}
}

// GenerateOTP assigns a fresh random numeric OTP to the condition and returns
// it. Called at order creation when the sector requires OTP verification.
func (c *Condition) GenerateOTP() string {
	digits := make([]byte, OTPLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed digit rather than panic mid-request.
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + n.Int64())
	}
	c.OTPValue = string(digits)
	return c.OTPValue
}

// Evidence is the proof bundle a driver submits with a delivery attempt.
// Fields are only considered for the requirements active on the order.
type Evidence struct {
	OTPValue          string
	Signature         []byte
	SignatureFilename string
	Photo             []byte
	PhotoFilename     string
	// BiometricScore is nil when the driver supplied no score.
	BiometricScore *float64
}
