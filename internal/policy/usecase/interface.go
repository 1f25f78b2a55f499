// Package usecase implements business logic for creating, updating, and
// evaluating rotation policies.
package usecase

import (
	"context"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
)

// Repository defines persistence operations for rotation policies.
type Repository interface {
	Create(ctx context.Context, policy *policyDomain.RotationPolicy) error
	Update(ctx context.Context, policy *policyDomain.RotationPolicy) error
	Get(ctx context.Context, name string) (*policyDomain.RotationPolicy, error)
	GetByKeyName(ctx context.Context, keyName string) ([]*policyDomain.RotationPolicy, error)
	List(ctx context.Context) ([]*policyDomain.RotationPolicy, error)
	Delete(ctx context.Context, name string) error
}

// UseCase defines business logic operations for the rotation policy engine.
type UseCase interface {
	// Create validates and persists a new rotation policy.
	Create(ctx context.Context, policy *policyDomain.RotationPolicy) error

	// Update validates and persists changes to an existing rotation policy.
	Update(ctx context.Context, policy *policyDomain.RotationPolicy) error

	// Get returns the named policy.
	Get(ctx context.Context, name string) (*policyDomain.RotationPolicy, error)

	// List returns all policies.
	List(ctx context.Context) ([]*policyDomain.RotationPolicy, error)

	// Delete removes a policy by name.
	Delete(ctx context.Context, name string) error

	// Evaluate evaluates every active policy bound to keyName and returns
	// the highest-priority result among them.
	Evaluate(ctx context.Context, keyName string, evalCtx policyDomain.EvaluationContext) (*policyDomain.EvaluationResult, error)
}
