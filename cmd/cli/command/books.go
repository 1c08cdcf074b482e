package command

import (
	"fmt"
	"strings"

	"bookhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Book commands",
	Long:  `Browse books, show the featured list and delete books (admin).`,
}

var listBooksCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		resp, err := c.ListBooks(cmd.Context(), page, limit)
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}

		fmt.Printf("Page %d of %d (%d books)\n", resp.Page, resp.TotalPages, resp.Total)
		for _, b := range resp.Books {
			printBookLine(b)
		}
		return nil
	},
}

var getBookCmd = &cobra.Command{
	Use:   "get [book-id]",
	Short: "Show a book with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		b, err := c.GetBook(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}

		color.Cyan("%s by %s", b.Title, b.Author)
		if b.PublishedYear > 0 {
			fmt.Printf("Published: %d\n", b.PublishedYear)
		}
		if len(b.Category) > 0 {
			fmt.Printf("Category: %s\n", strings.Join(b.Category, ", "))
		}
		fmt.Printf("Rating: %.1f (%d reviews)\n", b.AverageRating, b.ReviewCount)
		fmt.Printf("PDF: %s\n", b.PDFURL)
		if b.Description != "" {
			fmt.Println()
			fmt.Println(b.Description)
		}
		for _, r := range b.Reviews {
			printReviewLine(r)
		}
		return nil
	},
}

var featuredBooksCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the top rated books",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		resp, err := c.FeaturedBooks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get featured books: %w", err)
		}
		for i, b := range resp.FeaturedBooks {
			fmt.Printf("%d. ", i+1)
			printBookLine(b)
		}
		return nil
	},
}

var deleteBookCmd = &cobra.Command{
	Use:   "delete [book-id]",
	Short: "Delete a book with its files and reviews (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := c.DeleteBook(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		color.Green("✓ Book %s deleted", args[0])
		return nil
	},
}

func printBookLine(b dto.BookResponse) {
	fmt.Printf("%s  %s by %s  ★ %.1f (%d)\n", b.ID, b.Title, b.Author, b.AverageRating, b.ReviewCount)
}

func init() {
	booksCmd.AddCommand(listBooksCmd, getBookCmd, featuredBooksCmd, deleteBookCmd)

	listBooksCmd.Flags().Int("page", 1, "Page number")
	listBooksCmd.Flags().Int("limit", 10, "Books per page")
}
