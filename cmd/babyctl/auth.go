package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			u, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			log.Debug().Str("user_id", u.ID).Dur("elapsed", time.Since(start)).Msg("login completed")
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s <%s>\n", u.FirstName, u.LastName, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var firstName, lastName, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			u, err := c.Signup(cmd.Context(), firstName, lastName, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Signed in as <%s>\n", u.FirstName, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			c.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if !c.VerifyToken() {
				return errors.New("not logged in")
			}
			u := c.CurrentUser()
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in (no profile cached)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s <%s> id=%s\n", u.Initials(), u.FirstName, u.LastName, u.Email, u.ID)
			return nil
		},
	}
}
