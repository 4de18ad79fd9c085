package service

import (
	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/pkg/models"
)

// WarningNotChecked is attached to results produced by FailOpen.
const WarningNotChecked = "Photo could not be checked automatically; continuing without validation"

// FailurePolicy decides what an infrastructure fault during validation means
// for the caller. It either returns a substitute result with failedOpen set,
// or returns the error to propagate.
type FailurePolicy func(err error) (models.ValidationResult, bool, error)

// FailOpen lets the photo through when the validator itself is broken, so a
// local fault never blocks the remote analysis. Request problems (bad input,
// download failures, oversized files) still propagate.
func FailOpen(err error) (models.ValidationResult, bool, error) {
	if !opensOn(err) {
		return models.ValidationResult{}, false, err
	}
	return models.ValidationResult{
		IsValid: true,
		Details: models.ValidationDetails{
			Warnings: []string{WarningNotChecked},
		},
	}, true, nil
}

// FailClosed propagates every error.
func FailClosed(err error) (models.ValidationResult, bool, error) {
	return models.ValidationResult{}, false, err
}

// PolicyFor returns FailOpen when failOpen is set, FailClosed otherwise.
func PolicyFor(failOpen bool) FailurePolicy {
	if failOpen {
		return FailOpen
	}
	return FailClosed
}

func opensOn(err error) bool {
	for _, t := range []apperrors.ErrorType{
		apperrors.ErrorTypeDecode,
		apperrors.ErrorTypeCapability,
		apperrors.ErrorTypeDetection,
		apperrors.ErrorTypeTimeout,
		apperrors.ErrorTypeInternal,
	} {
		if apperrors.IsType(err, t) {
			return true
		}
	}
	return false
}
