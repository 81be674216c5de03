package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	shipName    string
	shipAddress string
	shipCity    string
	shipState   string
	shipZip     string
	shipCountry string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, session, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		if _, ok := session.User(); !ok {
			return fmt.Errorf("log in before checking out")
		}
		items := cart.OrderItems()
		if len(items) == 0 {
			return fmt.Errorf("cart is empty")
		}

		orderID, err := client.CreateOrder(cmd.Context(), storefront.CreateOrderParams{
			Items: items,
			Total: cart.Total(),
			ShippingAddress: storefront.ShippingAddress{
				FullName: shipName,
				Address:  shipAddress,
				City:     shipCity,
				State:    shipState,
				ZipCode:  shipZip,
				Country:  shipCountry,
			},
		})
		if err != nil {
			return formatAPIError(err)
		}

		cart.Clear()
		fmt.Printf("Order placed: %s\n", orderID)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, session, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		if _, ok := session.User(); !ok {
			return fmt.Errorf("log in to see your orders")
		}
		orders, err := client.Orders(cmd.Context())
		if err != nil {
			return formatAPIError(err)
		}
		if len(orders) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%d\t$%.2f\t%s\n",
				o.ID, o.Status, len(o.Items), o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
		}
		_ = w.Flush()
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&shipName, "name", "", "Recipient full name")
	checkoutCmd.Flags().StringVar(&shipAddress, "address", "", "Street address")
	checkoutCmd.Flags().StringVar(&shipCity, "city", "", "City")
	checkoutCmd.Flags().StringVar(&shipState, "state", "", "State or region (optional)")
	checkoutCmd.Flags().StringVar(&shipZip, "zip", "", "Postal code")
	checkoutCmd.Flags().StringVar(&shipCountry, "country", "", "Country")
	_ = checkoutCmd.MarkFlagRequired("name")
	_ = checkoutCmd.MarkFlagRequired("address")
	_ = checkoutCmd.MarkFlagRequired("city")
	_ = checkoutCmd.MarkFlagRequired("zip")
	_ = checkoutCmd.MarkFlagRequired("country")

	rootCmd.AddCommand(checkoutCmd, ordersCmd)
}
