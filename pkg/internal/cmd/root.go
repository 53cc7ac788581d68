package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
	"github.com/campus-connect/campusctl/pkg/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "campusctl",
	Short: "Terminal client for the Campus Connect portal",
	Long: `campusctl talks to a Campus Connect backend: sign in as a student or
professor, browse and chat in group channels, read the campus feed,
look up academic resources, rate professors, and run resume analysis.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		if config, _ := cmd.Flags().GetString("config"); config != "" {
			viper.SetConfigFile(config)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("unable to read config: %w", err)
			}
		}
		if server, _ := cmd.Flags().GetString("server"); server != "" {
			viper.Set("server", server)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringP("server", "s", "", "backend base url (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "path to a config file")
}

func sessionDir() string {
	if dir := viper.GetString("session_dir"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "campusctl")
}

// newClient builds the one configured REST client. The unauthorized
// interceptor is the CLI's version of the sign-in redirect: clear the
// session, point at the role-appropriate sign-in command.
func newClient() (*api.Client, *session.Store, error) {
	sess := session.New(sessionDir())
	client, err := api.NewClient(viper.GetString("server"), sess)
	if err != nil {
		return nil, nil, err
	}

	client.OnUnauthorized(func(role models.UserRole) {
		color.Red("Your session is no longer valid.")
		fmt.Printf("Sign in again with: campusctl login --role %s\n", role)
	})
	return client, sess, nil
}
