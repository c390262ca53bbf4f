package services

import (
	"fmt"

	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/order"
)

// ConditionValidator checks submitted delivery evidence against the order's
// active requirements. Every requirement is evaluated independently so the
// caller always receives the complete list of violations, not just the first.
type ConditionValidator struct{}

// NewConditionValidator creates a ConditionValidator.
func NewConditionValidator() ConditionValidator {
	return ConditionValidator{}
}

// Validate evaluates the evidence against the order's requirement flags and
// the stored condition record. It returns the list of human-readable
// violations; an empty list means the delivery may complete.
//
// Validate never mutates the condition record, so a failed attempt is fully
// retryable. Use Apply to persist the evidence once validation passed.
func (v ConditionValidator) Validate(requirements order.Requirements, cond *condition.Condition, evidence condition.Evidence) []string {
	var violations []string

	if requirements.OTP {
		switch {
		case evidence.OTPValue == "":
			violations = append(violations, "OTP required but not provided")
		case cond.OTPValue != "" && cond.OTPValue != evidence.OTPValue:
			violations = append(violations, "invalid OTP")
		}
	}

	if requirements.Signature && len(evidence.Signature) == 0 {
		violations = append(violations, "signature required but not provided")
	}

	if requirements.Photo && len(evidence.Photo) == 0 {
		violations = append(violations, "photo required but not provided")
	}

	if requirements.Biometric {
		switch {
		case evidence.BiometricScore == nil:
			violations = append(violations, "biometric score required but not provided")
		case *evidence.BiometricScore < condition.MinBiometricScore:
			violations = append(violations, fmt.Sprintf(
				"biometric score too low: %.2f (minimum %.1f)",
				*evidence.BiometricScore, condition.MinBiometricScore))
		}
	}

	return violations
}

// Apply writes the validated evidence onto the condition record and marks it
// validated. Only the pieces relevant to active requirements are persisted.
func (v ConditionValidator) Apply(requirements order.Requirements, cond *condition.Condition, evidence condition.Evidence) {
	if requirements.OTP {
		cond.OTPVerified = true
	}
	if requirements.Signature {
		cond.SignatureFile = evidence.Signature
		cond.SignatureFilename = evidence.SignatureFilename
		if cond.SignatureFilename == "" {
			cond.SignatureFilename = "signature.png"
		}
	}
	if requirements.Photo {
		cond.Photo = evidence.Photo
		cond.PhotoFilename = evidence.PhotoFilename
		if cond.PhotoFilename == "" {
			cond.PhotoFilename = "delivery_photo.jpg"
		}
	}
	if requirements.Biometric && evidence.BiometricScore != nil {
		score := *evidence.BiometricScore
		cond.BiometricScore = &score
	}
	cond.Validated = true
}
