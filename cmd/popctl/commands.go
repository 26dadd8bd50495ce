package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/dietpop-lineup/internal/app"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

type runtimeOpener func(ctx context.Context) (*app.Runtime, func(context.Context) error, error)

type cli struct {
	owner string
	open  runtimeOpener
	rt    *app.Runtime
	close func(context.Context) error
}

func newRootCommand(open runtimeOpener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "popctl",
		Short:         "Manage a Diet Pop NHL lineup",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, closeFn, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			c.rt, c.close = rt, closeFn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.close == nil {
				return nil
			}
			return c.close(context.WithoutCancel(cmd.Context()))
		},
	}
	root.PersistentFlags().StringVar(&c.owner, "owner", usecase.DefaultOwnerID, "owner namespace to act on")

	root.AddCommand(c.lineupCommand(), c.popsCommand(), c.exportCommand())
	return root
}

func (c *cli) lineupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineup",
		Short: "Show or edit the lineup",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the lineup card and its stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printLineup(cmd)
		},
	}

	assign := &cobra.Command{
		Use:   "assign <position> <pop-id>",
		Short: "Put a pop into a position, vacating its old slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePositionArg(args[0])
			if err != nil {
				return err
			}
			if _, err := c.rt.Lineups.Assign(cmd.Context(), c.owner, strings.TrimSpace(args[1]), pos); err != nil {
				return err
			}
			return c.printLineup(cmd)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <position>",
		Short: "Empty a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePositionArg(args[0])
			if err != nil {
				return err
			}
			if _, err := c.rt.Lineups.Remove(cmd.Context(), c.owner, pos); err != nil {
				return err
			}
			return c.printLineup(cmd)
		},
	}

	swap := &cobra.Command{
		Use:   "swap <position> <position>",
		Short: "Exchange the contents of two positions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePositionArg(args[0])
			if err != nil {
				return err
			}
			b, err := parsePositionArg(args[1])
			if err != nil {
				return err
			}
			if _, err := c.rt.Lineups.Swap(cmd.Context(), c.owner, a, b); err != nil {
				return err
			}
			return c.printLineup(cmd)
		},
	}

	move := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a pop, swapping if the target is occupied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePositionArg(args[0])
			if err != nil {
				return err
			}
			to, err := parsePositionArg(args[1])
			if err != nil {
				return err
			}
			if _, err := c.rt.Lineups.Move(cmd.Context(), c.owner, from, to); err != nil {
				return err
			}
			return c.printLineup(cmd)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty every position, keeping the lineup name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.rt.Lineups.Clear(cmd.Context(), c.owner); err != nil {
				return err
			}
			return c.printLineup(cmd)
		},
	}

	cmd.AddCommand(show, assign, remove, swap, move, clearCmd)
	return cmd
}

func (c *cli) popsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pops",
		Short: "Browse the catalog",
	}

	var filter pop.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List standard and custom pops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.rt.Catalog.Filter(cmd.Context(), c.owner, filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPops(items))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Brand, "brand", "", "only pops of this brand")
	list.Flags().StringVar(&filter.Search, "search", "", "match name, brand or flavor")
	list.Flags().BoolVar(&filter.CustomOnly, "custom-only", false, "only custom pops")

	brands := &cobra.Command{
		Use:   "brands",
		Short: "List distinct brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.rt.Catalog.ListBrands(cmd.Context(), c.owner)
			if err != nil {
				return err
			}
			for _, brand := range items {
				fmt.Fprintln(cmd.OutOrStdout(), brand)
			}
			return nil
		},
	}

	cmd.AddCommand(list, brands)
	return cmd
}

func (c *cli) exportCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write lineup, custom pops and settings as a JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := c.rt.Data.Export(cmd.Context(), c.owner)
			if err != nil {
				return err
			}
			raw, err := kv.EncodeExport(bundle.Lineup, bundle.CustomPops, bundle.Settings, bundle.ExportedAt)
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}

			if file == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			if err := os.WriteFile(file, raw, 0o600); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to this path instead of stdout")
	return cmd
}

func (c *cli) printLineup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	summary, err := c.rt.Lineups.Summary(ctx, c.owner)
	if err != nil {
		return err
	}
	all, err := c.rt.Catalog.ListAll(ctx, c.owner)
	if err != nil {
		return err
	}

	byID := make(map[string]pop.Pop, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderLineup(summary, byID))
	return nil
}

func parsePositionArg(raw string) (lineup.Position, error) {
	pos, err := lineup.ParsePosition(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return pos, nil
}
