package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	registerEmail     string
	registerPassword  string
	registerFirstName string
	registerLastName  string
	registerPhone     string

	loginEmail    string
	loginPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		user, err := session.Register(cmd.Context(), storefront.RegisterParams{
			Email:     registerEmail,
			Password:  registerPassword,
			FirstName: registerFirstName,
			LastName:  registerLastName,
			Phone:     registerPhone,
		})
		if err != nil {
			return formatAPIError(err)
		}
		fmt.Printf("Registered and logged in as %s\n", user.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		user, err := session.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return formatAPIError(err)
		}
		fmt.Printf("Logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		user, ok := session.User()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s %s <%s>", user.FirstName, user.LastName, user.Email)
		if user.IsAdmin {
			fmt.Print(" (admin)")
		}
		fmt.Println()
		return nil
	},
}

// formatAPIError flattens validation details into readable CLI output.
func formatAPIError(err error) error {
	var sfErr *storefront.Error
	if errors.As(err, &sfErr) && len(sfErr.Details) > 0 {
		msg := sfErr.Message
		for _, d := range sfErr.Details {
			msg += "\n  - " + d
		}
		return fmt.Errorf("%s", msg)
	}
	return err
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number (optional)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
