package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	keyUseCase "github.com/allisson/keystore/internal/keylifecycle/usecase"
	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	policyUseCase "github.com/allisson/keystore/internal/policy/usecase"
)

// RunSchedulerCheck evaluates every active rotation policy against its bound
// key's current state and reports whether the scheduler would rotate it on
// its next tick, without mutating any key. Mirrors the scheduler's own
// evaluation path one tick at a time for operational inspection.
func RunSchedulerCheck(
	ctx context.Context,
	policies policyUseCase.UseCase,
	keys keyUseCase.KeyVersionRepository,
	writer io.Writer,
) error {
	all, err := policies.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rotation policies: %w", err)
	}

	now := time.Now().UTC()
	checked := make(map[string]struct{})

	for _, policy := range all {
		if !policy.IsActive {
			continue
		}
		if _, seen := checked[policy.KeyName]; seen {
			continue
		}
		checked[policy.KeyName] = struct{}{}

		key, err := keys.GetByName(ctx, policy.KeyName)
		if err != nil {
			_, _ = fmt.Fprintf(writer, "%-20s ERROR: %v\n", policy.KeyName, err)
			continue
		}

		evalCtx := policyDomain.EvaluationContext{
			KeyName:      policy.KeyName,
			LastRotation: key.CreatedAt,
			CreatedAt:    key.CreatedAt,
			Now:          now,
		}

		result, err := policies.Evaluate(ctx, policy.KeyName, evalCtx)
		if err != nil {
			_, _ = fmt.Fprintf(writer, "%-20s ERROR: %v\n", policy.KeyName, err)
			continue
		}

		status := "no rotation due"
		if result.RotationRequired {
			status = fmt.Sprintf("ROTATION DUE (trigger=%s, priority=%d): %s", result.Trigger, result.Priority, result.Reason)
		}
		_, _ = fmt.Fprintf(writer, "%-20s %s\n", policy.KeyName, status)
	}

	if len(checked) == 0 {
		_, _ = fmt.Fprintln(writer, "No active rotation policies")
	}

	return nil
}
