// Package commands implements the shop CLI, a terminal storefront client
// built on the resilient API client in pkg/storefront.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"solestore/pkg/storefront"
)

var (
	// Global flags
	apiURL  string
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Terminal client for the sneaker storefront",
	Long: `shop is a terminal client for the sneaker storefront API.

Browse the catalog, manage a persistent cart, and place orders. Session and
cart state survive restarts under the data directory.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDir := ".solestore"
	if home, err := os.UserHomeDir(); err == nil {
		defaultDir = filepath.Join(home, ".solestore")
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "Storefront API base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDir, "Directory for session and cart state")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func cliLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newApp builds the client stack: storage, API client, session, cart.
// The session is restored so a previously logged-in user stays logged in.
func newApp(cmd *cobra.Command) (*storefront.Client, *storefront.Session, *storefront.Cart, error) {
	storage, err := storefront.NewFileStorage(dataDir)
	if err != nil {
		return nil, nil, nil, err
	}

	client := storefront.New(apiURL,
		storefront.WithTimeout(10*time.Second),
		storefront.WithLogger(cliLogger()),
	)
	session := storefront.NewSession(client, storage)
	if err := session.Restore(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: session restore failed: %v\n", err)
	}

	cart := storefront.NewCart(storage, cliLogger())
	if err := cart.Restore(); err != nil {
		return nil, nil, nil, fmt.Errorf("restore cart: %w", err)
	}
	return client, session, cart, nil
}
