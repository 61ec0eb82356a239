package commands

import (
	"context"
	"fmt"
	"os"

	"clovis-backend/lib/scrapers/gflights"
	"clovis-backend/lib/serviceutil"
	"clovis-backend/services/flights"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clovis-cli",
	Short: "clovis-cli searches live flight fares from the command line.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *flights.Service {
	client, err := gflights.NewClient(gflights.Options{})
	if err != nil {
		serviceutil.Fatal("failed to initialize flights scraper", err)
	}
	return flights.NewService(client, flights.Options{MaxConcurrency: 4})
}
