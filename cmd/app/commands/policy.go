package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	policyUseCase "github.com/allisson/keystore/internal/policy/usecase"
)

// RunCreatePolicy validates and persists a new rotation policy.
func RunCreatePolicy(
	ctx context.Context,
	uc policyUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, keyName string,
	rotationIntervalDays int,
	maxOperations int64,
	complianceFrameworksCSV string,
) error {
	policy := &policyDomain.RotationPolicy{
		Name:                 name,
		KeyName:              keyName,
		RotationIntervalDays: rotationIntervalDays,
		MaxOperations:        maxOperations,
		ComplianceFrameworks: parseComplianceFrameworks(complianceFrameworksCSV),
		IsActive:             true,
	}

	logger.Info("creating rotation policy", slog.String("name", name), slog.String("key_name", keyName))

	if err := uc.Create(ctx, policy); err != nil {
		return fmt.Errorf("failed to create policy %q: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Created policy %q for key %q\n", policy.Name, policy.KeyName)
	return nil
}

// RunListPolicies prints every registered rotation policy.
func RunListPolicies(ctx context.Context, uc policyUseCase.UseCase, writer io.Writer) error {
	policies, err := uc.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}

	if len(policies) == 0 {
		_, _ = fmt.Fprintln(writer, "No rotation policies registered")
		return nil
	}

	for _, p := range policies {
		_, _ = fmt.Fprintf(
			writer,
			"%-30s key=%-20s interval_days=%-4d max_ops=%-10d active=%t\n",
			p.Name, p.KeyName, p.RotationIntervalDays, p.MaxOperations, p.IsActive,
		)
	}
	return nil
}

// RunDeletePolicy removes a policy by name.
func RunDeletePolicy(ctx context.Context, uc policyUseCase.UseCase, logger *slog.Logger, writer io.Writer, name string) error {
	logger.Info("deleting rotation policy", slog.String("name", name))

	if err := uc.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete policy %q: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Deleted policy %q\n", name)
	return nil
}

func parseComplianceFrameworks(csv string) []policyDomain.ComplianceFramework {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	frameworks := make([]policyDomain.ComplianceFramework, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			frameworks = append(frameworks, policyDomain.ComplianceFramework(p))
		}
	}
	return frameworks
}
