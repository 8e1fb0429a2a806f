package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/session"
	"github.com/aretw0/avyna/pkg/validate"
)

var (
	email       string
	password    string
	fullName    string
	acceptTerms bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		form := validate.Login{
			Email:    ask("Email", email),
			Password: askSecret("Password", password),
		}
		auth, err := app.Login(context.Background(), form)
		if err != nil {
			fatal("Login failed", err)
		}

		name := form.Email
		if auth.User != nil && auth.User.FullName != "" {
			name = auth.User.FullName
		}
		fmt.Printf("Logged in as %s\n", name)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		form := validate.Register{
			FullName: ask("Full name", fullName),
			Email:    ask("Email", email),
			Password: askSecret("Password", password),
		}
		form.ConfirmPassword = form.Password
		if password == "" {
			form.ConfirmPassword = askSecret("Confirm password", "")
		}
		form.AcceptTerms = acceptTerms || confirm("Accept the terms and conditions?")

		if _, err := app.Register(context.Background(), form); err != nil {
			fatal("Registration failed", err)
		}
		fmt.Printf("Welcome, %s!\n", form.FullName)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		auth := session.NewAuth(openStore(), slog.Default())
		if err := auth.DeleteUser(context.Background()); err != nil {
			fatal("Logout failed", err)
		}
		fmt.Println("Logged out")
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&email, "email", "", "Account email")
		c.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVar(&fullName, "name", "", "Full name")
	registerCmd.Flags().BoolVar(&acceptTerms, "accept-terms", false, "Accept the terms and conditions")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}
