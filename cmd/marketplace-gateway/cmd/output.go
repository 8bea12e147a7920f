package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(items []domain.ItemSummary) error {
	return writeItemsTable(os.Stdout, items)
}

func writeItemsTable(w io.Writer, items []domain.ItemSummary) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tSTATE\n")
	for i := range items {
		tw.writef("%s\t%s\t%s\t%s\n",
			items[i].ID,
			truncate(items[i].Title, 40),
			formatPrice(items[i].Price, items[i].Currency),
			items[i].ListingState,
		)
	}
	return tw.finish()
}

func formatPrice(price *json.Number, currency *string) string {
	if price == nil {
		return "-"
	}
	if currency == nil {
		return price.String()
	}
	return price.String() + " " + *currency
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
