package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/keystore/internal/audit/domain"
	auditUseCase "github.com/allisson/keystore/internal/audit/usecase"
)

type mockAuditUseCase struct {
	mock.Mock
}

func (m *mockAuditUseCase) Append(
	ctx context.Context,
	actor, action, resourceType, resourceID string,
	metadata []byte,
) (*auditDomain.AuditRecord, error) {
	args := m.Called(ctx, actor, action, resourceType, resourceID, metadata)
	record, _ := args.Get(0).(*auditDomain.AuditRecord)
	return record, args.Error(1)
}

func (m *mockAuditUseCase) List(
	ctx context.Context,
	filter auditUseCase.ListFilter,
) ([]*auditDomain.AuditRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]*auditDomain.AuditRecord)
	return records, args.Error(1)
}

func (m *mockAuditUseCase) VerifyChain(ctx context.Context) (*auditUseCase.VerificationReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*auditUseCase.VerificationReport)
	return report, args.Error(1)
}

func (m *mockAuditUseCase) DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, cutoff, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunCleanAuditLogs(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	days := 30

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockAuditUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time"), false).Return(int64(100), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, mockUseCase, logger, &out, days, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 100 audit log(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockAuditUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time"), true).Return(int64(50), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, mockUseCase, logger, &out, days, true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 50`)
		require.Contains(t, out.String(), `"dry_run": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-days", func(t *testing.T) {
		mockUseCase := &mockAuditUseCase{}
		err := RunCleanAuditLogs(ctx, mockUseCase, logger, &bytes.Buffer{}, -1, false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
	})
}
