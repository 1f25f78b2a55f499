package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	policyService "github.com/allisson/keystore/internal/policy/service"
	apperrors "github.com/allisson/keystore/internal/errors"
)

type policyUseCase struct {
	repo      Repository
	evaluator *policyService.Evaluator
}

// NewPolicyUseCase creates a new rotation policy use case.
func NewPolicyUseCase(repo Repository, evaluator *policyService.Evaluator) UseCase {
	return &policyUseCase{repo: repo, evaluator: evaluator}
}

func (u *policyUseCase) Create(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	if existing, err := u.repo.Get(ctx, policy.Name); err == nil && existing != nil {
		return policyDomain.ErrPolicyNameConflict
	} else if err != nil && !apperrors.Is(err, policyDomain.ErrPolicyNotFound) {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return apperrors.Wrap(err, "failed to generate policy id")
	}

	now := time.Now().UTC()
	policy.ID = id
	policy.CreatedAt = now
	policy.UpdatedAt = now
	if !policy.IsActive {
		policy.IsActive = true
	}

	return u.repo.Create(ctx, policy)
}

func (u *policyUseCase) Update(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	existing, err := u.repo.Get(ctx, policy.Name)
	if err != nil {
		return err
	}

	policy.ID = existing.ID
	policy.CreatedAt = existing.CreatedAt
	policy.UpdatedAt = time.Now().UTC()

	return u.repo.Update(ctx, policy)
}

func (u *policyUseCase) Get(ctx context.Context, name string) (*policyDomain.RotationPolicy, error) {
	return u.repo.Get(ctx, name)
}

func (u *policyUseCase) List(ctx context.Context) ([]*policyDomain.RotationPolicy, error) {
	return u.repo.List(ctx)
}

func (u *policyUseCase) Delete(ctx context.Context, name string) error {
	return u.repo.Delete(ctx, name)
}

func (u *policyUseCase) Evaluate(
	ctx context.Context,
	keyName string,
	evalCtx policyDomain.EvaluationContext,
) (*policyDomain.EvaluationResult, error) {
	policies, err := u.repo.GetByKeyName(ctx, keyName)
	if err != nil {
		return nil, err
	}

	result := &policyDomain.EvaluationResult{
		Trigger:            policyDomain.TriggerNone,
		Priority:           1,
		Reason:             "no active policy requires rotation",
		SafetyChecksPassed: true,
	}

	for _, policy := range policies {
		if !policy.IsActive {
			continue
		}
		candidate := u.evaluator.Evaluate(policy, evalCtx)
		if candidate.RotationRequired && candidate.Priority > result.Priority {
			result = candidate
		}
	}

	return result, nil
}
