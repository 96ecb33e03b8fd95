package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barberbook/admin-console/internal/core/service"
)

func newLoginCommand(flags *rootFlags) *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the booking backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if password == "" {
				fmt.Fprint(os.Stderr, "password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			user, err := a.auth.Login(ctx, service.LoginInput{
				Email:    email,
				Password: password,
				Remember: remember,
			})
			if err != nil {
				return err
			}

			fmt.Printf("logged in as %s (%s)\n", user.FullName, user.Role)
			if !remember {
				fmt.Println("session not persisted (use --remember to stay logged in)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Persist credentials across console restarts")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			a.auth.Bootstrap(ctx)
			a.auth.Logout(ctx)
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			user := a.session.User()
			fmt.Printf("%s <%s>\nrole: %s\n", user.FullName, user.Email, user.Role)
			if a.session.IsTokenExpired("") {
				fmt.Println("access token expired; run `barberctl refresh`")
			}
			return nil
		},
	}
}

func newRefreshCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.Restore()
			if err := a.session.Refresh(ctx); err != nil {
				return err
			}
			fmt.Println("access token refreshed")
			return nil
		},
	}
}
