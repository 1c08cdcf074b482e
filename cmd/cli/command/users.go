package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User commands",
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		resp, err := c.ListUsers(cmd.Context(), page, limit)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		fmt.Printf("Page %d of %d (%d users)\n", resp.Page, resp.TotalPages, resp.Total)
		for _, u := range resp.Users {
			fmt.Printf("%s  %-20s %-30s %s\n", u.ID, u.Username, u.Email, u.Role)
		}
		return nil
	},
}

var getUserCmd = &cobra.Command{
	Use:   "get [user-id]",
	Short: "Show a user profile with their reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		u, err := c.GetUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		color.Cyan("%s <%s> (%s)", u.Username, u.Email, u.Role)
		fmt.Printf("Reviews: %d\n", len(u.Reviews))
		for _, r := range u.Reviews {
			title := "unknown book"
			if r.Book != nil {
				title = r.Book.Title
			}
			fmt.Printf("  [%d/5] %s: %s\n", r.Rating, title, r.Comment)
		}
		return nil
	},
}

func init() {
	usersCmd.AddCommand(listUsersCmd, getUserCmd)

	listUsersCmd.Flags().Int("page", 1, "Page number")
	listUsersCmd.Flags().Int("limit", 10, "Users per page")
}
