package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/validate"
)

var (
	profileJSON bool
	editName    string
	editEmail   string
	editAge     int
	editPCOS    bool
	editEndo    bool
	currentPass string
	newPass     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
	Args:  cobra.NoArgs,
	Run:   showProfile,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	Run:   showProfile,
}

func showProfile(cmd *cobra.Command, args []string) {
	app := openApp()

	u, err := app.Profile().Get(context.Background())
	if err != nil {
		fatal("Error fetching profile", loggedOut(err))
	}
	printUser(u)
}

func printUser(u core.User) {
	if profileJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(u)
		return
	}

	fmt.Printf("%s <%s>\n", u.FullName, u.Email)
	if u.Age != nil {
		fmt.Printf("  Age:               %d\n", *u.Age)
	}
	fmt.Printf("  PCOS:              %s\n", yesNo(u.HasPCOS))
	fmt.Printf("  Endometriosis:     %s\n", yesNo(u.HasEndometriosis))
	plan := u.SubscriptionPlan
	if plan == "" {
		plan = "free"
	}
	fmt.Printf("  Plan:              %s\n", plan)
	if u.CreatedAt != "" {
		fmt.Printf("  Member since:      %s\n", u.CreatedAt)
	}
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return "-"
	case *b:
		return "yes"
	default:
		return "no"
	}
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change profile fields",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		ctx := context.Background()

		current, err := app.Profile().Get(ctx)
		if err != nil {
			fatal("Error fetching profile", loggedOut(err))
		}

		form := validate.ProfileFrom(current)
		flags := cmd.Flags()
		if flags.Changed("name") {
			form.FullName = editName
		}
		if flags.Changed("email") {
			form.Email = editEmail
		}
		if flags.Changed("age") {
			form.Age = editAge
		}
		if flags.Changed("pcos") {
			form.HasPCOS = editPCOS
		}
		if flags.Changed("endometriosis") {
			form.HasEndometriosis = editEndo
		}

		u, err := app.EditProfile(ctx, form)
		if err != nil {
			fatal("Error updating profile", err)
		}
		printUser(u)
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		form := validate.ChangePassword{
			CurrentPassword: askSecret("Current password", currentPass),
			NewPassword:     askSecret("New password", newPass),
		}
		form.ConfirmPassword = form.NewPassword
		if newPass == "" {
			form.ConfirmPassword = askSecret("Confirm password", "")
		}

		msg, err := app.ChangePassword(context.Background(), form)
		if err != nil {
			fatal("Error changing password", err)
		}
		fmt.Println(msg)
	},
}

var profilePlanCmd = &cobra.Command{
	Use:       "plan <free|paid>",
	Short:     "Switch subscription plan",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"free", "paid"},
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		u, err := app.ChangePlan(context.Background(), args[0])
		if err != nil {
			fatal("Error changing plan", err)
		}
		fmt.Printf("Plan is now %s\n", u.SubscriptionPlan)
	},
}

func init() {
	profileCmd.PersistentFlags().BoolVar(&profileJSON, "json", false, "Output as JSON")

	profileEditCmd.Flags().StringVar(&editName, "name", "", "Full name")
	profileEditCmd.Flags().StringVar(&editEmail, "email", "", "Email")
	profileEditCmd.Flags().IntVar(&editAge, "age", 0, "Age")
	profileEditCmd.Flags().BoolVar(&editPCOS, "pcos", false, "Diagnosed with PCOS")
	profileEditCmd.Flags().BoolVar(&editEndo, "endometriosis", false, "Diagnosed with endometriosis")

	profilePasswordCmd.Flags().StringVar(&currentPass, "current", "", "Current password (prompted when omitted)")
	profilePasswordCmd.Flags().StringVar(&newPass, "new", "", "New password (prompted when omitted)")

	profileCmd.AddCommand(profileShowCmd, profileEditCmd, profilePasswordCmd, profilePlanCmd)
	rootCmd.AddCommand(profileCmd)
}
