package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	profileFirstName string
	profileLastName  string
	profilePhone     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		if _, ok := session.User(); !ok {
			return fmt.Errorf("log in to see your profile")
		}
		user, err := client.Profile(cmd.Context())
		if err != nil {
			return formatAPIError(err)
		}
		printUser(user)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		if _, ok := session.User(); !ok {
			return fmt.Errorf("log in to update your profile")
		}
		user, err := client.UpdateProfile(cmd.Context(), storefront.UpdateProfileParams{
			FirstName: profileFirstName,
			LastName:  profileLastName,
			Phone:     profilePhone,
		})
		if err != nil {
			return formatAPIError(err)
		}
		fmt.Println("Profile updated.")
		printUser(user)
		return nil
	},
}

func printUser(user storefront.User) {
	fmt.Printf("Name:  %s %s\n", user.FirstName, user.LastName)
	fmt.Printf("Email: %s\n", user.Email)
	if user.Phone != "" {
		fmt.Printf("Phone: %s\n", user.Phone)
	}
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "First name")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "Last name")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")
	_ = profileUpdateCmd.MarkFlagRequired("first-name")
	_ = profileUpdateCmd.MarkFlagRequired("last-name")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
