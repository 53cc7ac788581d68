package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/campus-connect/campusctl/pkg/internal/api"
)

func init() {
	subjectsCmd.Flags().String("branch", "", "filter by branch")
	subjectsCmd.Flags().String("semester", "", "filter by semester")
	resourcesAddCmd.Flags().String("description", "", "resource description")

	resourcesCmd.AddCommand(subjectsCmd, resourcesListCmd, resourcesAddCmd)
	rootCmd.AddCommand(resourcesCmd)
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Study material by subject",
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		branch, _ := cmd.Flags().GetString("branch")
		semester, _ := cmd.Flags().GetString("semester")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		subjects, err := client.ListSubjects(ctx, branch, semester)
		if err != nil {
			return err
		}
		for _, subject := range subjects {
			fmt.Printf("%-10s %-40s %s sem %d  (%s)\n", subject.Code, subject.Name, subject.Branch, subject.Semester, subject.ID)
		}
		return nil
	},
}

var resourcesListCmd = &cobra.Command{
	Use:   "list <subject-id>",
	Short: "List resources for a subject",
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
		resources, err := client.ListResources(ctx, args[0])
		if err != nil {
			return err
		}
		if len(resources) == 0 {
			fmt.Println("No resources for this subject yet.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, resource := range resources {
			bold.Println(resource.Title)
			if resource.Description != nil {
				fmt.Printf("  %s\n", *resource.Description)
			}
			fmt.Printf("  %s\n\n", resource.FileURL)
		}
		return nil
	},
}

var resourcesAddCmd = &cobra.Command{
	Use:   "add <subject-id> <title> <file-url> <file-name>",
	Short: "Register a resource link",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.AddResourceRequest{
			Title:    args[1],
			FileURL:  args[2],
			FileName: args[3],
		}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			request.Description = &description
		}

		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("invalid resource: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		resource, err := client.AddResource(ctx, args[0], request)
		if err != nil {
			return err
		}
		color.Green("Added %q (%s).", resource.Title, resource.ID)
		return nil
	},
}
