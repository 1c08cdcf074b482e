package command

// root.go defines the root command for the bookhub CLI and its global flags.

import (
	"fmt"
	"os"

	"bookhub/cmd/cli/authentication"
	"bookhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookhub",
	Short: "bookhub - BookHub Command Line Interface",
	Long: `bookhub talks to the BookHub API. Use it to:
- Browse books and the featured list
- Read and write reviews
- Manage users (admins)

Use "bookhub [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("BOOKHUB_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL")

	rootCmd.AddCommand(authCmd, booksCmd, reviewsCmd, usersCmd)
}

// GetAuthenticatedClient returns a client carrying the stored token.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetCredentials()
	if err != nil || creds.Token == "" {
		return nil, fmt.Errorf("not logged in, run 'bookhub auth login' first")
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.Token)
	return c, nil
}
