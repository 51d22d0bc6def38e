package cmd

import "errors"

// Sentinel errors for the failure modes a caller may want to branch on.
// Everything else surfaces as a wrapped pgx or I/O error.
var (
	// ErrMalformedWindow: a window bound cannot be parsed, or start is after end.
	ErrMalformedWindow = errors.New("malformed time window")

	// ErrSchemaMissing: the DDL document path is absent or unreadable.
	ErrSchemaMissing = errors.New("schema document missing")

	// ErrEmptyVariantPool: order items were requested but no variants exist.
	ErrEmptyVariantPool = errors.New("no product variants available")

	// ErrEmptyCustomerPool: orders were requested but no customers exist.
	ErrEmptyCustomerPool = errors.New("no customers available")
)
