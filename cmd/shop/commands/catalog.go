package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"solestore/pkg/storefront"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the sneaker catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		sneakers, err := client.Sneakers(cmd.Context())
		if err != nil {
			return err
		}
		printSneakers(sneakers)
		return nil
	},
}

var promosCmd = &cobra.Command{
	Use:   "promos",
	Short: "List active promotions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		promotions, err := client.Promotions(cmd.Context())
		if err != nil {
			return err
		}
		printPromotions(promotions)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Show catalog and promotions together",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newApp(cmd)
		if err != nil {
			return err
		}

		var (
			sneakers   []storefront.Sneaker
			promotions []storefront.Promotion
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			sneakers, err = client.Sneakers(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			promotions, err = client.Promotions(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printPromotions(promotions)
		fmt.Println()
		printSneakers(sneakers)
		return nil
	},
}

func printSneakers(sneakers []storefront.Sneaker) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tPRICE\tSTOCK\tSIZES")
	for _, s := range sneakers {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%d\t%s\n",
			s.ID, s.Name, s.Brand, s.Price, s.Stock, strings.Join(s.Sizes, ","))
	}
	_ = w.Flush()
}

func printPromotions(promotions []storefront.Promotion) {
	if len(promotions) == 0 {
		fmt.Println("No active promotions.")
		return
	}
	for _, p := range promotions {
		fmt.Printf("%s: %s (%d%% off)\n", p.Title, p.Description, p.DiscountPercentage)
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd, promosCmd, browseCmd)
}
