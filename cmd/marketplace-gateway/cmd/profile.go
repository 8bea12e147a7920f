package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated seller's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			p, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("ID:\t%d\n", p.ID)
			tw.writef("Nickname:\t%s\n", p.Nickname)
			tw.writef("Name:\t%s %s\n", p.FirstName, p.LastName)
			tw.writef("Email:\t%s\n", p.Email)
			tw.writef("Site:\t%s\n", p.SiteID)
			tw.writef("URL:\t%s\n", p.Permalink)
			return tw.finish()
		},
	}
}
