package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func init() {
	feedListCmd.Flags().String("type", "", "filter by feed type (announcement, event, general, academic)")
	feedListCmd.Flags().String("search", "", "search in title and content")
	feedListCmd.Flags().Bool("pinned", false, "only pinned posts")
	feedPostCmd.Flags().String("type", models.FeedTypeGeneral, "feed type")
	feedPostCmd.Flags().String("priority", models.FeedPriorityNormal, "priority (low, normal, high, urgent)")
	feedPostCmd.Flags().StringSlice("tags", nil, "post tags")
	feedPostCmd.Flags().Bool("pin", false, "pin the post (professors only)")

	feedEditCmd.Flags().String("title", "", "new title")
	feedEditCmd.Flags().String("content", "", "new content")
	feedEditCmd.Flags().String("priority", "", "new priority (low, normal, high, urgent)")
	feedEditCmd.Flags().Bool("pin", false, "pin the post")
	feedEditCmd.Flags().Bool("unpin", false, "unpin the post")

	feedCmd.AddCommand(feedListCmd, feedShowCmd, feedPostCmd, feedEditCmd, feedDeleteCmd,
		feedCommentCmd, feedLikeCmd, feedShareCmd)
	rootCmd.AddCommand(feedCmd)
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Read and publish campus feed posts",
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent feed posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		params := api.ListFeedsParams{Page: 1, PerPage: 20, SortBy: "created_at", SortOrder: "desc"}
		params.FeedType, _ = cmd.Flags().GetString("type")
		params.Search, _ = cmd.Flags().GetString("search")
		if pinned, _ := cmd.Flags().GetBool("pinned"); pinned {
			params.IsPinned = &pinned
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		list, err := client.ListFeeds(ctx, params)
		if err != nil {
			return err
		}
		if len(list.Feeds) == 0 {
			fmt.Println("The feed is empty.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, feed := range list.Feeds {
			if feed.IsPinned {
				color.Yellow("* pinned")
			}
			bold.Println(feed.Title)
			fmt.Printf("  %s | %s | %s | %s\n", feed.ID, feed.FeedType, feed.Author.Name, feed.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
			fmt.Printf("  %d likes, %d comments\n\n", feed.LikesCount, feed.CommentsCount)
		}
		return nil
	},
}

var feedShowCmd = &cobra.Command{
	Use:   "show <feed-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		feed, err := client.GetFeed(ctx, args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Println(feed.Title)
		fmt.Printf("%s (%s), %s\n\n", feed.Author.Name, feed.Author.UserType, feed.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
		fmt.Println(feed.Content)
		if len(feed.Tags) > 0 {
			fmt.Printf("\nTags: %s\n", strings.Join(feed.Tags, ", "))
		}

		comments, err := client.ListComments(ctx, feed.ID)
		if err != nil {
			return err
		}
		if len(comments) > 0 {
			fmt.Printf("\nComments (%d):\n", len(comments))
			for _, comment := range comments {
				fmt.Printf("  %s: %s\n", comment.Author.Name, comment.Content)
			}
		}
		return nil
	},
}

var feedPostCmd = &cobra.Command{
	Use:   "post <title> <content>",
	Short: "Publish a feed post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.CreateFeedRequest{
			Title:    args[0],
			Content:  args[1],
			IsPublic: true,
		}
		request.FeedType, _ = cmd.Flags().GetString("type")
		request.Priority, _ = cmd.Flags().GetString("priority")
		request.Tags, _ = cmd.Flags().GetStringSlice("tags")
		request.IsPinned, _ = cmd.Flags().GetBool("pin")

		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("invalid post: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		feed, err := client.CreateFeed(ctx, request)
		if err != nil {
			return err
		}
		color.Green("Posted %q (%s).", feed.Title, feed.ID)
		return nil
	},
}

var feedEditCmd = &cobra.Command{
	Use:   "edit <feed-id>",
	Short: "Update one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.UpdateFeedRequest{}
		if title, _ := cmd.Flags().GetString("title"); title != "" {
			request.Title = &title
		}
		if content, _ := cmd.Flags().GetString("content"); content != "" {
			request.Content = &content
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			request.Priority = &priority
		}
		if pin, _ := cmd.Flags().GetBool("pin"); pin {
			request.IsPinned = &pin
		}
		if unpin, _ := cmd.Flags().GetBool("unpin"); unpin {
			pinned := false
			request.IsPinned = &pinned
		}

		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("invalid update: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		feed, err := client.UpdateFeed(ctx, args[0], request)
		if err != nil {
			return err
		}
		color.Green("Updated %q.", feed.Title)
		return nil
	},
}

var feedDeleteCmd = &cobra.Command{
	Use:   "delete <feed-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		if err := client.DeleteFeed(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Post deleted.")
		return nil
	},
}

var feedLikeCmd = &cobra.Command{
	Use:   "like <feed-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		liked, err := client.LikeFeed(ctx, args[0])
		if err != nil {
			return err
		}
		if liked {
			color.Green("Liked.")
		} else {
			fmt.Println("Like removed.")
		}
		return nil
	},
}

var feedShareCmd = &cobra.Command{
	Use:   "share <feed-id>",
	Short: "Share a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		if err := client.ShareFeed(ctx, args[0]); err != nil {
			return err
		}
		color.Green("Shared.")
		return nil
	},
}

var feedCommentCmd = &cobra.Command{
	Use:   "comment <feed-id> <content>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		comment, err := client.AddComment(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		color.Green("Comment added (%s).", comment.ID)
		return nil
	},
}
