package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/campus-connect/campusctl/pkg/internal/chat"
	"github.com/campus-connect/campusctl/pkg/internal/tui"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat <channel>",
	Short: "Open a live chat session in a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sess, err := newClient()
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
		if !channel.IsMember {
			if _, err := client.JoinChannel(ctx, channel); err != nil {
				return err
			}
		}

		endpoint, err := chat.WebsocketURL(viper.GetString("server"), sess.Token())
		if err != nil {
			return err
		}
		room := chat.OpenRoom(cmd.Context(), client, endpoint, channel, user)
		return tui.Run(room)
	},
}
