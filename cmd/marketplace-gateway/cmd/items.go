package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
)

func itemsCmd() *cobra.Command {
	itemsRoot := &cobra.Command{
		Use:   "items",
		Short: "Search and inspect the seller's items",
	}

	itemsRoot.AddCommand(
		itemsSearchCmd(),
		itemsProbeCmd(),
	)

	return itemsRoot
}

func itemsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the seller's items and resolve their details",
		Example: `  marketplace-gateway items search "notebook"
  marketplace-gateway items search "notebook" --limit 5 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return fmt.Errorf("query must not be blank")
			}

			a, err := buildApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if limit < 1 || limit > a.cfg.Items.MaxResults {
				limit = a.cfg.Items.MaxResults
			}

			ctx := cmd.Context()
			me, err := a.client.Me(ctx)
			if err != nil {
				return err
			}

			res, err := a.client.SearchItemIDs(ctx, platform.SearchRequest{
				UserID: me.ID,
				Query:  query,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			ids := res.IDs
			if len(ids) > limit {
				ids = ids[:limit]
			}
			summaries := a.aggregator.Resolve(ctx, ids)

			if jsonOutput() {
				return outputJSON(map[string]any{
					"query": query,
					"items": summaries,
					"total": res.Total,
				})
			}

			if len(summaries) == 0 {
				fmt.Println("No items found.")
				return nil
			}

			fmt.Printf("Showing %d of %d items\n\n", len(summaries), res.Total)
			return printItemsTable(summaries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items (default items.max_results)")

	return cmd
}

func itemsProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <item-id>",
		Short: "Check whether the seller may modify an item",
		Long: "Sends a dry-run update for the item and reports whether the platform\n" +
			"would accept a write from the authenticated seller.",
		Example: `  marketplace-gateway items probe MLA1234567890`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			check, err := a.client.ProbeItemWrite(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(check)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Item:\t%s\n", check.ItemID)
			tw.writef("Allowed:\t%v\n", check.Allowed)
			tw.writef("Status:\t%s\n", check.Status)
			return tw.finish()
		},
	}
}
