package domain

import (
	"github.com/allisson/keystore/internal/errors"
)

// Rotation policy error definitions.
var (
	// ErrPolicyNotFound indicates the requested policy does not exist.
	ErrPolicyNotFound = errors.Wrap(errors.ErrNotFound, "rotation policy not found")

	// ErrPolicyNameConflict indicates a policy with the given name already exists.
	ErrPolicyNameConflict = errors.Wrap(errors.ErrConflict, "rotation policy name already exists")

	// ErrInvalidPolicy indicates the policy fails domain validation.
	ErrInvalidPolicy = errors.Wrap(errors.ErrInvalidInput, "invalid rotation policy")

	// ErrUnknownComplianceFramework indicates a policy references a
	// compliance framework absent from the built-in framework table.
	ErrUnknownComplianceFramework = errors.Wrap(errors.ErrInvalidInput, "unknown compliance framework")
)
