package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	sneakerName        string
	sneakerBrand       string
	sneakerPrice       float64
	sneakerStock       int
	sneakerStyle       string
	sneakerSizes       string
	sneakerDescription string
	sneakerImageURL    string

	promoTitle       string
	promoDescription string
	promoDiscount    int
	promoValidUntil  string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations (requires an admin account)",
}

var adminSneakerAddCmd = &cobra.Command{
	Use:   "sneaker-add",
	Short: "Add a sneaker to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, err := client.CreateSneaker(cmd.Context(), storefront.Sneaker{
			Name:        sneakerName,
			Brand:       sneakerBrand,
			Price:       sneakerPrice,
			Stock:       sneakerStock,
			Style:       sneakerStyle,
			Sizes:       strings.Split(sneakerSizes, ","),
			Description: sneakerDescription,
			ImageURL:    sneakerImageURL,
		})
		if err != nil {
			return formatAPIError(err)
		}
		fmt.Printf("Sneaker created with id %d\n", id)
		return nil
	},
}

var adminSneakerRmCmd = &cobra.Command{
	Use:   "sneaker-rm <sneaker-id>",
	Short: "Remove a sneaker from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sneaker id %q", args[0])
		}
		if err := client.DeleteSneaker(cmd.Context(), id); err != nil {
			return formatAPIError(err)
		}
		fmt.Println("Sneaker removed.")
		return nil
	},
}

var adminPromoAddCmd = &cobra.Command{
	Use:   "promo-add",
	Short: "Create a promotion",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		validUntil, err := time.Parse("2006-01-02", promoValidUntil)
		if err != nil {
			return fmt.Errorf("invalid --valid-until, want YYYY-MM-DD: %w", err)
		}
		created, err := client.CreatePromotion(cmd.Context(), storefront.Promotion{
			Title:              promoTitle,
			Description:        promoDescription,
			DiscountPercentage: promoDiscount,
			ValidUntil:         validUntil,
		})
		if err != nil {
			return formatAPIError(err)
		}
		fmt.Printf("Promotion created: %s\n", created.ID)
		return nil
	},
}

var adminOrderStatusCmd = &cobra.Command{
	Use:   "order-status <order-id> <completed|cancelled>",
	Short: "Transition a pending order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := client.UpdateOrderStatus(cmd.Context(), args[0], args[1]); err != nil {
			return formatAPIError(err)
		}
		fmt.Printf("Order %s is now %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	adminSneakerAddCmd.Flags().StringVar(&sneakerName, "name", "", "Sneaker name")
	adminSneakerAddCmd.Flags().StringVar(&sneakerBrand, "brand", "", "Brand")
	adminSneakerAddCmd.Flags().Float64Var(&sneakerPrice, "price", 0, "Price")
	adminSneakerAddCmd.Flags().IntVar(&sneakerStock, "stock", 0, "Initial stock")
	adminSneakerAddCmd.Flags().StringVar(&sneakerStyle, "style", "", "Style")
	adminSneakerAddCmd.Flags().StringVar(&sneakerSizes, "sizes", "", "Comma-separated sizes")
	adminSneakerAddCmd.Flags().StringVar(&sneakerDescription, "description", "", "Description")
	adminSneakerAddCmd.Flags().StringVar(&sneakerImageURL, "image-url", "", "Image URL")
	_ = adminSneakerAddCmd.MarkFlagRequired("name")
	_ = adminSneakerAddCmd.MarkFlagRequired("brand")
	_ = adminSneakerAddCmd.MarkFlagRequired("price")
	_ = adminSneakerAddCmd.MarkFlagRequired("sizes")

	adminPromoAddCmd.Flags().StringVar(&promoTitle, "title", "", "Promotion title")
	adminPromoAddCmd.Flags().StringVar(&promoDescription, "description", "", "Promotion description")
	adminPromoAddCmd.Flags().IntVar(&promoDiscount, "discount", 0, "Discount percentage (1-100)")
	adminPromoAddCmd.Flags().StringVar(&promoValidUntil, "valid-until", "", "Last valid day (YYYY-MM-DD)")
	_ = adminPromoAddCmd.MarkFlagRequired("title")
	_ = adminPromoAddCmd.MarkFlagRequired("description")
	_ = adminPromoAddCmd.MarkFlagRequired("discount")
	_ = adminPromoAddCmd.MarkFlagRequired("valid-until")

	adminCmd.AddCommand(adminSneakerAddCmd, adminSneakerRmCmd, adminPromoAddCmd, adminOrderStatusCmd)
	rootCmd.AddCommand(adminCmd)
}
