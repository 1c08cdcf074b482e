package command

import (
	"fmt"

	"bookhub/cmd/cli/authentication"
	"bookhub/cmd/cli/command/client"
	"bookhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the BookHub API server. Supports signup, login, logout.`,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new BookHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignupRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.AdminKey, _ = cmd.Flags().GetString("admin-key")

		resp, err := client.NewHTTPClient(apiURL).Signup(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		color.Green("✓ %s", resp.Message)
		fmt.Printf("UserID: %s (%s)\n", resp.User.ID, resp.User.Role)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your BookHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Login(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		err = authentication.StoreCredentials(&authentication.StoredCredentials{
			Token:    resp.Token,
			UserID:   resp.User.ID,
			Username: resp.User.Username,
			Role:     resp.User.Role,
		})
		if err != nil {
			return fmt.Errorf("could not save token to keyring: %w", err)
		}

		color.Green("✓ Logged in as %s", resp.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and revoke the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if c, err := GetAuthenticatedClient(); err == nil {
			if err := c.Logout(cmd.Context()); err != nil {
				color.Yellow("warning: server logout failed: %v", err)
			}
		}
		if err := authentication.DeleteCredentials(); err != nil {
			return fmt.Errorf("could not clear keyring: %w", err)
		}
		color.Green("✓ Successfully logged out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(signupCmd, loginCmd, logoutCmd)

	signupCmd.Flags().StringP("username", "u", "", "Username for the new account")
	signupCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	signupCmd.Flags().StringP("password", "p", "", "Password for the new account")
	signupCmd.Flags().String("admin-key", "", "Admin secret key (optional)")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email of the account")
	loginCmd.Flags().StringP("password", "p", "", "Password of the account")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
