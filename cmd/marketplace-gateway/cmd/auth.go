package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Run the OAuth authorization flow",
		Long: "Obtain seller consent and exchange the resulting authorization code\n" +
			"for a token pair without running the HTTP server.",
	}

	authRoot.AddCommand(
		authURLCmd(),
		authExchangeCmd(),
	)

	return authRoot
}

func authURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the consent URL",
		Example: `  # Open the printed URL in a browser signed in as the seller
  marketplace-gateway auth url`,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			fmt.Println(a.tokens.AuthorizationURL())
			return nil
		},
	}
}

func authExchangeCmd() *cobra.Command {
	var (
		code              string
		printRefreshToken bool
	)

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for tokens",
		Long: "Exchange the code delivered to the redirect URI for an access and\n" +
			"refresh token pair and persist it with the configured credential backend.",
		Example: `  marketplace-gateway auth exchange --code TG-65f1c0ffee

  # env backend: print the refresh token so it can be put in the environment
  marketplace-gateway auth exchange --code TG-65f1c0ffee --print-refresh-token`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			creds, err := a.tokens.CompleteAuthorization(cmd.Context(), code)
			if err != nil {
				return err
			}

			if jsonOutput() {
				out := map[string]any{
					"status":     "authorized",
					"expires_at": creds.ExpiresAt,
				}
				if printRefreshToken {
					out["refresh_token"] = creds.RefreshToken
				}
				return outputJSON(out)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Status:\tauthorized\n")
			tw.writef("Backend:\t%s\n", a.cfg.Credentials.Backend)
			if creds.ExpiresAt != nil {
				tw.writef("Expires:\t%s\n", creds.ExpiresAt.Format(timeLayout))
			}
			if printRefreshToken {
				tw.writef("Refresh Token:\t%s\n", creds.RefreshToken)
			}
			if err := tw.finish(); err != nil {
				return err
			}

			if a.cfg.Credentials.Backend != credstore.BackendFile && !printRefreshToken {
				fmt.Fprintf(os.Stderr,
					"note: the %s backend does not persist tokens; rerun with --print-refresh-token\n",
					a.cfg.Credentials.Backend,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "authorization code from the redirect")
	cmd.Flags().BoolVar(&printRefreshToken, "print-refresh-token", false, "include the refresh token in the output")
	cobra.CheckErr(cmd.MarkFlagRequired("code"))

	return cmd
}
