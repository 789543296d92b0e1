package service

import "errors"

var (
	// ErrInvoiceNotFound is returned when no saved invoice has the UUID
	ErrInvoiceNotFound = errors.New("saved invoice not found")

	// ErrFeatureDisabled is returned when an optional collaborator was not configured
	ErrFeatureDisabled = errors.New("feature not configured")
)
