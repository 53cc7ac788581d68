package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func init() {
	channelsSearchCmd.Flags().String("type", "", "filter by channel type (general, academic, club, event)")
	channelsSearchCmd.Flags().StringSlice("tags", nil, "filter by tags")
	channelsCreateCmd.Flags().String("description", "", "channel description")
	channelsCreateCmd.Flags().String("type", models.ChannelTypeGeneral, "channel type")
	channelsCreateCmd.Flags().Bool("private", false, "make the channel private")
	channelsCreateCmd.Flags().StringSlice("tags", nil, "channel tags")
	channelsCreateCmd.Flags().Int("max-members", 0, "member cap (0 for none)")

	channelsUpdateCmd.Flags().String("name", "", "new name")
	channelsUpdateCmd.Flags().String("description", "", "new description")
	channelsUpdateCmd.Flags().Bool("archive", false, "archive the channel")
	channelsUpdateCmd.Flags().StringSlice("tags", nil, "replace the tag set")

	channelsCmd.AddCommand(channelsListCmd, channelsSearchCmd, channelsCreateCmd, channelsUpdateCmd,
		channelsJoinCmd, channelsLeaveCmd, channelsMembersCmd, channelsPinnedCmd, channelsDeleteCmd)
	rootCmd.AddCommand(channelsCmd)
}

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Browse and manage group channels",
}

var channelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List public channels",
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
		list, err := client.ListChannels(ctx, 1, 50)
		if err != nil {
			return err
		}
		printChannels(list.Channels)
		return nil
	},
}

var channelsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search channels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		channelType, _ := cmd.Flags().GetString("type")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		list, err := client.SearchChannels(ctx, api.SearchChannelsParams{
			Query:       args[0],
			ChannelType: channelType,
			Tags:        tags,
			Page:        1,
			PerPage:     50,
		})
		if err != nil {
			return err
		}
		printChannels(list.Channels)
		return nil
	},
}

var channelsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.CreateChannelRequest{Name: args[0]}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			request.Description = &description
		}
		request.ChannelType, _ = cmd.Flags().GetString("type")
		request.IsPrivate, _ = cmd.Flags().GetBool("private")
		request.Tags, _ = cmd.Flags().GetStringSlice("tags")
		if cap, _ := cmd.Flags().GetInt("max-members"); cap > 0 {
			request.MaxMembers = &cap
		}

		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("invalid channel details: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		channel, err := client.CreateChannel(ctx, request)
		if err != nil {
			return err
		}
		color.Green("Created %s (%s).", channel.DisplayText(), channel.ID)
		return nil
	},
}

var channelsUpdateCmd = &cobra.Command{
	Use:   "update <channel>",
	Short: "Update a channel you administer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.UpdateChannelRequest{}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			request.Name = &name
		}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			request.Description = &description
		}
		if archive, _ := cmd.Flags().GetBool("archive"); archive {
			request.IsArchived = &archive
		}
		request.Tags, _ = cmd.Flags().GetStringSlice("tags")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.Me(ctx); err != nil {
			return err
		}
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}
		updated, err := client.UpdateChannel(ctx, channel.ID, request)
		if err != nil {
			return err
		}
		color.Green("Updated %s.", updated.DisplayText())
		return nil
	},
}

var channelsDeleteCmd = &cobra.Command{
	Use:   "delete <channel>",
	Short: "Delete a channel you own",
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
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteChannel(ctx, channel.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", channel.DisplayText())
		return nil
	},
}

var channelsJoinCmd = &cobra.Command{
	Use:   "join <channel>",
	Short: "Join a channel by id or name",
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
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}
		if _, err := client.JoinChannel(ctx, channel); err != nil {
			return err
		}
		color.Green("Joined %s.", channel.DisplayText())
		return nil
	},
}

var channelsLeaveCmd = &cobra.Command{
	Use:   "leave <channel>",
	Short: "Leave a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := client.Me(ctx)
		if err != nil {
			return err
		}
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}

		members, err := client.ListChannelMembers(ctx, channel.ID)
		if err != nil {
			return err
		}
		member, found := lo.Find(members, func(m models.ChannelMember) bool {
			return m.MemberID == user.ID
		})
		if !found {
			return fmt.Errorf("you are not a member of %s", channel.Name)
		}

		if err := client.LeaveChannel(ctx, channel.ID, member.ID); err != nil {
			return err
		}
		fmt.Printf("Left %s.\n", channel.DisplayText())
		return nil
	},
}

var channelsMembersCmd = &cobra.Command{
	Use:   "members <channel>",
	Short: "List channel members",
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
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}
		members, err := client.ListChannelMembers(ctx, channel.ID)
		if err != nil {
			return err
		}

		for _, member := range members {
			name := member.MemberID
			if member.MemberName != nil {
				name = *member.MemberName
			}
			suffix := member.MemberRole
			if member.IsAdmin {
				suffix += ", admin"
			}
			fmt.Printf("%s (%s)\n", name, suffix)
		}
		return nil
	},
}

var channelsPinnedCmd = &cobra.Command{
	Use:   "pinned <channel>",
	Short: "List pinned messages",
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
		channel, err := resolveChannel(ctx, client, args[0])
		if err != nil {
			return err
		}
		pinned, err := client.ListPinnedMessages(ctx, channel.ID)
		if err != nil {
			return err
		}
		if len(pinned) == 0 {
			fmt.Println("No pinned messages.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, pin := range pinned {
			bold.Printf("%s", pin.Message.SenderDisplay())
			fmt.Printf("  %s\n", pin.Message.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
			fmt.Printf("  %s\n\n", pin.Message.Text())
		}
		return nil
	},
}

// resolveChannel accepts either a channel id or a channel name.
func resolveChannel(ctx context.Context, client *api.Client, ref string) (models.Channel, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return client.GetChannel(ctx, ref)
	}

	list, err := client.SearchChannels(ctx, api.SearchChannelsParams{Query: ref, Page: 1, PerPage: 50})
	if err != nil {
		return models.Channel{}, err
	}
	channel, found := lo.Find(list.Channels, func(c models.Channel) bool {
		return strings.EqualFold(c.Name, ref)
	})
	if !found {
		return models.Channel{}, fmt.Errorf("no channel named %q", ref)
	}
	return channel, nil
}

func printChannels(channels []models.Channel) {
	if len(channels) == 0 {
		fmt.Println("No channels found.")
		return
	}

	bold := color.New(color.Bold)
	for _, channel := range channels {
		bold.Printf("%-32s", channel.DisplayText())
		fmt.Printf(" %-10s %4d members", channel.ChannelType, channel.MemberCount)
		if channel.IsMember {
			role := models.ChannelRoleMember
			if channel.UserRole != nil {
				role = *channel.UserRole
			}
			color.Cyan("  joined (%s)", role)
		} else if channel.IsArchived {
			color.Yellow("  archived")
		} else {
			fmt.Println()
		}
	}
}
