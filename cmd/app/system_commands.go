package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/keystore/cmd/app/commands"
	"github.com/allisson/keystore/internal/app"
	"github.com/allisson/keystore/internal/config"
	hsmService "github.com/allisson/keystore/internal/hsm/service"
)

// newHSMDestinationProvider builds the destination provider for hsm-migrate.
// With no destination URI it provisions a fresh in-process software
// simulator; otherwise it opens a cloud-kms provider at that URI.
func newHSMDestinationProvider(ctx context.Context, container *app.Container, destKMSKeyURI string) (hsmService.Provider, error) {
	if destKMSKeyURI == "" {
		return hsmService.NewSoftwareSimulator(container.AEADManager()), nil
	}
	return hsmService.NewCloudKMSProvider(ctx, "hsm-migrate-destination", destKMSKeyURI)
}

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunMigrations()
			},
		},
		{
			Name:  "clean-audit-logs",
			Usage: "Delete audit logs older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete audit logs older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many logs would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Verify cryptographic integrity of the audit ledger's hash chain",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-policy",
			Usage: "Register a new rotation policy bound to a managed key",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Unique policy name"},
				&cli.StringFlag{Name: "key-name", Aliases: []string{"k"}, Required: true, Usage: "Managed key name this policy governs"},
				&cli.IntFlag{Name: "interval-days", Value: 0, Usage: "Rotate every N days (0 disables time-based rotation)"},
				&cli.IntFlag{Name: "max-operations", Value: 0, Usage: "Rotate after N operations (0 disables usage-based rotation)"},
				&cli.StringFlag{Name: "compliance", Value: "", Usage: "Comma-separated compliance frameworks (e.g. fips-140-2,pci-dss)"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				policyUseCase, err := container.PolicyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreatePolicy(
					ctx,
					policyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("key-name"),
					int(cmd.Int("interval-days")),
					cmd.Int("max-operations"),
					cmd.String("compliance"),
				)
			},
		},
		{
			Name:  "list-policies",
			Usage: "List all registered rotation policies",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				policyUseCase, err := container.PolicyUseCase()
				if err != nil {
					return err
				}

				return commands.RunListPolicies(ctx, policyUseCase, commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "delete-policy",
			Usage: "Delete a rotation policy by name",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Policy name to delete"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				policyUseCase, err := container.PolicyUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeletePolicy(ctx, policyUseCase, container.Logger(), commands.DefaultIO().Writer, cmd.String("name"))
			},
		},
		{
			Name:  "scheduler-check",
			Usage: "Dry-run the rotation scheduler's evaluation pass without rotating anything",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				policyUseCase, err := container.PolicyUseCase()
				if err != nil {
					return err
				}

				keyVersionRepository, err := container.KeyVersionRepository()
				if err != nil {
					return err
				}

				return commands.RunSchedulerCheck(ctx, policyUseCase, keyVersionRepository, commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "hsm-migrate",
			Usage: "Migrate a key from the configured HSM provider into a separate destination provider (a fresh software simulator, or cloud-kms when --dest-kms-key-uri is set)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "key-id", Aliases: []string{"k"}, Required: true, Usage: "HSM key identifier to migrate"},
				&cli.BoolFlag{Name: "extractable", Value: false, Usage: "Whether the source key material may be exported"},
				&cli.StringFlag{Name: "dest-kms-key-uri", Value: "", Usage: "If set, use a cloud-kms provider at this gocloud.dev secrets URI as the destination instead of a fresh software simulator; that provider rejects ImportKey, so the migration stops at the import step"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				src, err := container.HSMProvider()
				if err != nil {
					return err
				}

				dst, err := newHSMDestinationProvider(ctx, container, cmd.String("dest-kms-key-uri"))
				if err != nil {
					return err
				}

				return commands.RunHSMMigrate(
					ctx,
					src,
					dst,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key-id"),
					cmd.Bool("extractable"),
				)
			},
		},
		{
			Name:  "check-alerts",
			Usage: "Evaluate the monitoring rule engine against current HSM connectivity",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				alertingUseCase, err := container.AlertingUseCase()
				if err != nil {
					return err
				}

				hsmProvider, err := container.HSMProvider()
				if err != nil {
					return err
				}

				return commands.RunAlertCheck(ctx, alertingUseCase, hsmProvider, commands.DefaultIO().Writer)
			},
		},
	}
}
