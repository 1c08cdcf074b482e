package command

import (
	"fmt"

	"bookhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Review commands",
	Long:  `List a book's reviews or add your own (one per book).`,
}

var listReviewsCmd = &cobra.Command{
	Use:   "list [book-id]",
	Short: "List reviews of a book, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		resp, err := c.ListReviews(cmd.Context(), args[0], page, limit)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}

		fmt.Printf("Page %d of %d (%d reviews)\n", resp.Page, resp.TotalPages, resp.TotalReviews)
		for _, r := range resp.Reviews {
			printReviewLine(r)
		}
		return nil
	},
}

var addReviewCmd = &cobra.Command{
	Use:   "add [book-id]",
	Short: "Review a book (rating 1-5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateReviewRequest
		req.Rating, _ = cmd.Flags().GetInt("rating")
		req.Comment, _ = cmd.Flags().GetString("comment")

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		review, err := c.AddReview(cmd.Context(), args[0], &req)
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}

		color.Green("✓ Review added successfully!")
		fmt.Printf("Review ID: %s\n", review.ID)
		return nil
	},
}

func printReviewLine(r dto.ReviewResponse) {
	author := "unknown"
	if r.User != nil && r.User.Username != "" {
		author = r.User.Username
	}
	fmt.Printf("  [%d/5] %s: %s (%s)\n", r.Rating, author, r.Comment, r.CreatedAt.Format("2006-01-02"))
}

func init() {
	reviewsCmd.AddCommand(listReviewsCmd, addReviewCmd)

	listReviewsCmd.Flags().Int("page", 1, "Page number")
	listReviewsCmd.Flags().Int("limit", 10, "Reviews per page")

	addReviewCmd.Flags().IntP("rating", "r", 0, "Rating from 1 to 5")
	addReviewCmd.Flags().StringP("comment", "c", "", "Review text")
	_ = addReviewCmd.MarkFlagRequired("rating")
	_ = addReviewCmd.MarkFlagRequired("comment")
}
