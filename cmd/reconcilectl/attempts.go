package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DrGermanius/Reconciler/internal"
)

func attemptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attempts <order-id>",
		Short: "Show the downstream sync attempts of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			attempts, err := service.GetSyncAttempts(context.Background(), args[0])
			if errors.Is(err, internal.ErrNoRecords) {
				fmt.Fprintf(cmd.OutOrStdout(), "no sync attempts recorded for order %s\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTARGET\tOPERATION\tATTEMPT\tDELAY\tOUTCOME\tERROR")
			for _, a := range attempts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					a.CreatedAt.Format("2006-01-02 15:04:05"), a.Target, a.Operation, a.Attempt, a.Delay, a.Outcome, a.Error)
			}
			return w.Flush()
		},
	}
}
