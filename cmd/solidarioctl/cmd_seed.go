package main

import (
	"errors"
	"fmt"

	"github.com/assisberlanda/sousolidario/internal/app/resources"
	"github.com/assisberlanda/sousolidario/internal/app/system/seed"
	"github.com/spf13/cobra"
)

func (c *cli) seedCmd() *cobra.Command {
	var (
		file    string
		example bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, campaigns, needed items and donations from a YAML file",
		Long: "seed creates the categories, then every user, campaign, needed item and donation in the file.\n" +
			"Users whose login already exists are kept; campaigns are always created anew.\n" +
			"With --storage memory nothing outlives the command, which makes it a dry run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				f   seed.File
				err error
			)
			switch {
			case example:
				f, err = seed.Parse(resources.ExampleSeed())
			case file != "":
				f, err = seed.Load(file)
			default:
				return errors.New("give --file or --example")
			}
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			deps, svcs, closeFn, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			logger := c.logger()
			cats, err := resources.DefaultCategories()
			if err != nil {
				return err
			}
			if _, err := seed.EnsureCategories(ctx, deps.Store, cats, logger); err != nil {
				return err
			}

			sum, err := svcs.Seeder(deps, logger).Apply(ctx, f)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Users:        %d created, %d existing\n", sum.Users, sum.UsersSkipped)
			fmt.Fprintf(out, "Campaigns:    %d\n", sum.Campaigns)
			fmt.Fprintf(out, "Needed items: %d\n", sum.NeededItems)
			fmt.Fprintf(out, "Donations:    %d (%d lines)\n", sum.Donations, sum.DonationLines)
			if err != nil {
				return fmt.Errorf("seed stopped early: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (YAML)")
	cmd.Flags().BoolVar(&example, "example", false, "Use the built-in example seed")
	cmd.MarkFlagsMutuallyExclusive("file", "example")
	return cmd
}
