package main

import (
	"fmt"

	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"github.com/spf13/cobra"
)

func codeCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print freshly generated campaign codes",
		Long:  "code prints codes in the format campaigns are given. Uniqueness is only checked when a campaign is created.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			for range count {
				fmt.Fprintln(cmd.OutOrStdout(), idgen.CampaignCode())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many codes to print")
	return cmd
}
