package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	cartAddQuantity int
	cartSetQuantity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the persistent cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart contents and total",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		items := cart.Items()
		if len(items) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SNEAKER\tSIZE\tQTY\tPRICE\tLINE")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t$%.2f\t$%.2f\n",
				item.Name, item.Size, item.Quantity, item.Price, item.Price*float64(item.Quantity))
		}
		_ = w.Flush()
		fmt.Printf("Total: $%.2f\n", cart.Total())
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <sneaker-id> <size>",
	Short: "Add a sneaker to the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sneaker id %q", args[0])
		}
		sneaker, err := client.SneakerByID(cmd.Context(), id)
		if err != nil {
			return formatAPIError(err)
		}
		cart.Add(storefront.CartItem{
			SneakerID: sneaker.ID,
			Size:      args[1],
			Quantity:  cartAddQuantity,
			Name:      sneaker.Name,
			Price:     sneaker.Price,
			ImageURL:  sneaker.ImageURL,
		})
		fmt.Printf("Added %d x %s (size %s). Total: $%.2f\n",
			cartAddQuantity, sneaker.Name, args[1], cart.Total())
		return nil
	},
}

var cartRmCmd = &cobra.Command{
	Use:   "rm <sneaker-id> <size>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sneaker id %q", args[0])
		}
		cart.Remove(id, args[1])
		fmt.Printf("Removed. Total: $%.2f\n", cart.Total())
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <sneaker-id> <size>",
	Short: "Set a cart line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sneaker id %q", args[0])
		}
		cart.SetQuantity(id, args[1], cartSetQuantity)
		fmt.Printf("Updated. Total: $%.2f\n", cart.Total())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cart, err := newApp(cmd)
		if err != nil {
			return err
		}
		cart.Clear()
		fmt.Println("Cart cleared.")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartAddQuantity, "quantity", "q", 1, "Quantity to add")
	cartSetCmd.Flags().IntVarP(&cartSetQuantity, "quantity", "q", 1, "New quantity")
	_ = cartSetCmd.MarkFlagRequired("quantity")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRmCmd, cartSetCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
