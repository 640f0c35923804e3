package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/indiverse/heritagebot/internal/auth"
	"github.com/spf13/cobra"
)

const tokenEnv = "HERITAGEBOT_TOKEN"

func newLoginCmd() *cobra.Command {
	var apiURL, email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in against the auth API and print the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authClient(apiURL)
			if err != nil {
				return err
			}

			token, err := client.Login(cmd.Context(), auth.Credentials{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			session := auth.NewSession(auth.NewMemoryTokenStore(""), client)
			state := session.Login(cmd.Context(), token)
			printState(cmd.OutOrStdout(), state)
			if state.Status == auth.StatusAuthenticated {
				fmt.Fprintf(cmd.OutOrStdout(), "export %s=%s\n", tokenEnv, token)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "auth-url", "", "Auth API base URL (overrides config)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var apiURL, token string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Resolve a stored token to its user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authClient(apiURL)
			if err != nil {
				return err
			}
			if token == "" {
				token = os.Getenv(tokenEnv)
			}

			session := auth.NewSession(auth.NewMemoryTokenStore(token), client)
			printState(cmd.OutOrStdout(), session.Load(cmd.Context()))
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "auth-url", "", "Auth API base URL (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "Token to check (default $"+tokenEnv+")")
	return cmd
}

func authClient(override string) (*auth.Client, error) {
	if override != "" {
		return auth.NewClient(override), nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return auth.NewClient(cfg.Auth.APIBaseURL), nil
}

func printState(w io.Writer, state auth.State) {
	if state.User == nil {
		fmt.Fprintln(w, state.Status)
		return
	}
	fmt.Fprintf(w, "%s as %s <%s>\n", state.Status, state.User.Username, state.User.Email)
}
