// Package domain defines core key lifecycle management domain models.
package domain

const (
	// MaxKeyNameLength is the maximum allowed length for managed key names.
	// This limit aligns with database schema constraints (VARCHAR(255)) and prevents
	// excessively long identifiers that could impact performance or cause display issues.
	MaxKeyNameLength = 255
)
