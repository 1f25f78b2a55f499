package commands

import (
	"context"
	"fmt"
	"io"

	alertingUseCase "github.com/allisson/keystore/internal/alerting/usecase"
	hsmService "github.com/allisson/keystore/internal/hsm/service"
)

// RunAlertCheck evaluates the registered alert rules against the HSM
// provider's current connection state and prints any alerts that fire.
// A standalone scheduler process feeds the same rule engine its own
// rotation-failure-rate and scheduler-liveness readings on each tick.
func RunAlertCheck(
	ctx context.Context,
	uc alertingUseCase.UseCase,
	hsmProvider hsmService.Provider,
	writer io.Writer,
) error {
	connected := 0.0
	if state := hsmProvider.ConnectionState(); state == "connected" || state == "authenticated" {
		connected = 1.0
	}

	alerts, err := uc.Evaluate(ctx, alertingUseCase.Snapshot{
		Global: map[string]float64{
			"hsm_connected": connected,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate alert rules: %w", err)
	}

	if len(alerts) == 0 {
		_, _ = fmt.Fprintln(writer, "No alerts fired")
		return nil
	}

	for _, alert := range alerts {
		_, _ = fmt.Fprintf(writer, "[%s] %s: %s (value=%.2f)\n", alert.Severity, alert.RuleName, alert.Message, alert.Value)
	}
	return nil
}
