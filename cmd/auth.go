package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/netatmo"
	"github.com/s0up4200/atmo/tokenstore"
)

var showToken bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Netatmo and store the access token",
	Long: `Exchange the Netatmo username and password for an access token using
the scopes from the config file, and store it for later commands.`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE:  runLogout,
}

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show the stored access token",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&showToken, "show", false, "print the full token instead of a masked one")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openTokenStore()
	if err != nil {
		return err
	}

	client, err := login(ctx, store)
	if err != nil {
		return err
	}

	token := client.Token()
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), token)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "✓ Logged in")
	fmt.Fprintf(out, "- Scopes: %s\n", scopeNames(token.Scope))
	fmt.Fprintf(out, "- Expires in: %ds\n", token.ExpiresIn)
	fmt.Fprintf(out, "- Stored in: %s\n", storeDescription())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := openTokenStore()
	if err != nil {
		return err
	}

	if err := store.Delete(context.Background()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Stored token removed")
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	store, err := openTokenStore()
	if err != nil {
		return err
	}

	token, err := store.Load(context.Background())
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return fmt.Errorf("no stored token, run 'atmo login' first")
		}
		return err
	}

	if !showToken {
		token.AccessToken = maskSecret(token.AccessToken)
		token.RefreshToken = maskSecret(token.RefreshToken)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), token)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Access token:  %s\n", token.AccessToken)
	fmt.Fprintf(out, "Refresh token: %s\n", token.RefreshToken)
	fmt.Fprintf(out, "Scopes:        %s\n", scopeNames(token.Scope))
	fmt.Fprintf(out, "Expires in:    %ds (from issue)\n", token.ExpiresIn)
	return nil
}

func scopeNames(scopes []netatmo.Scope) string {
	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// maskSecret keeps the first four characters of s
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func storeDescription() string {
	switch cfg.Token.Store {
	case "file":
		return cfg.Token.Path
	case "keyring":
		return "system keyring"
	default:
		return "nowhere (token.store is none)"
	}
}
