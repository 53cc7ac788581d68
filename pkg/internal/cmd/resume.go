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
	rootCmd.AddCommand(resumeCmd)
}

var resumeCmd = &cobra.Command{
	Use:   "resume <file>",
	Short: "Upload a resume for analysis (students only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sess, err := newClient()
		if err != nil {
			return err
		}
		if sess.LastRole() != models.RoleStudent {
			return fmt.Errorf("resume analysis is only available to students")
		}

		// Analysis can take a while on the server side.
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}

		fmt.Println("Uploading, this can take a minute...")
		analysis, err := client.AnalyzeResume(ctx, args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("Analysis of %s\n\n", analysis.Filename)
		fmt.Println(analysis.Analysis)
		return nil
	},
}
