package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func init() {
	feedbackRateCmd.Flags().Int("teaching", 0, "teaching rating 1-5")
	feedbackRateCmd.Flags().Int("communication", 0, "communication rating 1-5")
	feedbackRateCmd.Flags().Int("helpfulness", 0, "helpfulness rating 1-5")
	feedbackRateCmd.Flags().String("comment", "", "optional comment")
	for _, name := range []string{"teaching", "communication", "helpfulness"} {
		_ = feedbackRateCmd.MarkFlagRequired(name)
	}

	feedbackCmd.AddCommand(feedbackProfessorsCmd, feedbackRateCmd, feedbackShowCmd)
	rootCmd.AddCommand(feedbackCmd)
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Anonymous professor feedback",
}

var feedbackProfessorsCmd = &cobra.Command{
	Use:   "professors",
	Short: "List professors open for feedback",
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
		professors, err := client.ListProfessors(ctx)
		if err != nil {
			return err
		}
		for _, professor := range professors {
			fmt.Printf("%-30s %-20s %.1f/5 (%d ratings)  %s\n",
				professor.Name, professor.Department, professor.AverageRating, professor.RatingCount, professor.ID)
		}
		return nil
	},
}

var feedbackRateCmd = &cobra.Command{
	Use:   "rate <professor-id>",
	Short: "Submit an anonymous rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		rating := models.ProfessorRating{ProfessorID: args[0]}
		rating.Teaching, _ = cmd.Flags().GetInt("teaching")
		rating.Communication, _ = cmd.Flags().GetInt("communication")
		rating.Helpfulness, _ = cmd.Flags().GetInt("helpfulness")
		if comment, _ := cmd.Flags().GetString("comment"); comment != "" {
			rating.Comment = &comment
		}

		if err := validate.Struct(rating); err != nil {
			return fmt.Errorf("ratings must be between 1 and 5: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		if err := client.GiveFeedback(ctx, rating); err != nil {
			return err
		}
		color.Green("Feedback submitted. It is stored anonymously.")
		return nil
	},
}

var feedbackShowCmd = &cobra.Command{
	Use:   "show <professor-id>",
	Short: "Show aggregated feedback for a professor",
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
		summary, err := client.GetProfessorFeedback(ctx, args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("%s — %s\n", summary.Name, summary.Department)
		fmt.Printf("Overall %.1f/5 across %d ratings\n", summary.AverageRating, summary.RatingCount)
		for aspect, score := range summary.Breakdown {
			fmt.Printf("  %-15s %.1f\n", aspect, score)
		}
		return nil
	},
}
