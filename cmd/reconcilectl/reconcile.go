package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DrGermanius/Reconciler/internal"
	"github.com/DrGermanius/Reconciler/internal/model"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

func reconcileCmd() *cobra.Command {
	var (
		orderIDs []string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Retry downstream synchronization for paid orders",
		Long: `Retry downstream synchronization for paid orders that are not yet synced.

Without --order every order awaiting synchronization is picked up, oldest first.

Examples:
  reconcilectl reconcile --limit 50
  reconcilectl reconcile --order 0b7e3c1a-6a0e-4b43-9a52-0f3c1d2e4a11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			service, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			var results []model.WebhookProcessingResult
			if len(orderIDs) > 0 {
				results = service.ReconcileOrders(ctx, orderIDs)
			} else {
				results, err = service.ReconcilePending(ctx, limit)
				if err != nil {
					return err
				}
			}

			failed := 0
			for _, r := range results {
				if !r.Success || r.ReconciliationRequired {
					failed++
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(results); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d orders still need attention", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&orderIDs, "order", nil, "order id to reconcile (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum number of pending orders to pick up")

	return cmd
}

func newService() (*internal.Service, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	repository, err := internal.NewRepository(cfg.DatabaseURI, logger)
	if err != nil {
		return nil, nil, err
	}

	clock := internal.NewSystemClock()
	downstream := internal.Downstream{
		Accounting: internal.NewAccountingService(cfg.Accounting.URL, cfg.Accounting.APIKey, cfg.Accounting.Timeout, logger),
		Warehouse:  internal.NewWarehouseService(cfg.Warehouse.URL, cfg.Warehouse.APIKey, cfg.Warehouse.Timeout, logger),
		Probe:      cfg.Capabilities,
	}
	audit := internal.NewAuditLog(repository, logger, clock, cfg.Audit.MaxPayloadBytes)

	service := internal.NewService(repository, downstream, retry.New(cfg.RetryPolicy()), audit, clock, logger)

	return service, func() {
		repository.Close() //nolint:errcheck
		logger.Sync()      //nolint:errcheck
	}, nil
}
