package main

import (
	"fmt"
	"text/tabwriter"

	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/spf13/cobra"
)

func (c *cli) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id|code>",
		Short: "Show how far a campaign is from its targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, svcs, closeFn, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			camp, found, err := svcs.Matching.CampaignByRef(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("campaign %q not found", args[0])
			}
			p, err := svcs.Campaigns.Progress(ctx, camp.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := "active"
			if !camp.Active {
				state = "inactive"
			}
			fmt.Fprintf(out, "Campaign: #%d %s %s (%s)\n", camp.ID, camp.UniqueCode, camp.Title, state)
			fmt.Fprintf(out, "Progress: %d%% (%d/%d)\n", p.Percent, p.TotalCounted, p.TotalTarget)
			if len(p.Items) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			return writeItems(cmd, p.Items)
		},
	}
}

func writeItems(cmd *cobra.Command, items []campaignsvc.ItemProgress) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tITEM\tDONATED\tTARGET\tUNIT\t%")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%d\n", it.Priority, it.Name, it.Donated, it.Target, it.Unit, it.Percent)
	}
	return tw.Flush()
}
