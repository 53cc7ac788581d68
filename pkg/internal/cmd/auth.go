package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func init() {
	loginCmd.Flags().String("role", models.RoleStudent, "sign in as student or professor")
	signupCmd.Flags().String("role", models.RoleStudent, "sign up as student or professor")
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := roleFlag(cmd)
		if err != nil {
			return err
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.SignInRequest{}
		if role == models.RoleStudent {
			request.Usn = prompt("USN: ")
		} else {
			request.Email = prompt("Email: ")
		}
		request.Password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := client.SignIn(ctx, role, request); err != nil {
			return fmt.Errorf("sign in failed: %w", err)
		}

		user, err := client.Me(ctx)
		if err != nil {
			return err
		}
		color.Green("Signed in as %s (%s).", user.DisplayText(), user.Role)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a portal account",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := roleFlag(cmd)
		if err != nil {
			return err
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		request := api.SignUpRequest{Name: prompt("Full name: ")}
		if role == models.RoleStudent {
			request.Usn = prompt("USN: ")
		} else {
			request.Email = prompt("Email: ")
			request.Department = prompt("Department: ")
		}
		request.Password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}

		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("invalid signup details: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := client.SignUp(ctx, role, request)
		if err != nil {
			return fmt.Errorf("sign up failed: %w", err)
		}
		color.Green("Account created for %s. Sign in with: campusctl login --role %s", user.Name, role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sess, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		if err := client.Logout(ctx); err != nil {
			// The server call is best effort; the local session is
			// dropped either way.
			sess.Clear()
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sess, err := newClient()
		if err != nil {
			return err
		}

		if _, expiresAt, ok := sess.Claims(); ok && !expiresAt.IsZero() && expiresAt.Before(time.Now()) {
			color.Yellow("The saved token expired at %s.", expiresAt.Local().Format(time.RFC1123))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		user, err := client.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s\nrole: %s\nid: %s\n", user.DisplayText(), user.Role, user.ID)
		return nil
	},
}

func roleFlag(cmd *cobra.Command) (models.UserRole, error) {
	role, _ := cmd.Flags().GetString("role")
	if role != models.RoleStudent && role != models.RoleProfessor {
		return "", fmt.Errorf("role must be %q or %q", models.RoleStudent, models.RoleProfessor)
	}
	return role, nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
