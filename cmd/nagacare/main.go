package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nagacare/internal/directory"
)

var (
	// Global flags
	verbose bool
	asJSON  bool

	logger *zap.Logger
	dir    *directory.Directory
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nagacare",
	Short: "NagaCare - Naga City health directory and assistant",
	Long: `nagacare is the operator and offline client for the NagaCare service.

It reads the bundled facility, barangay and emergency contact tables and can
open an interactive session with the health assistant.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger = zap.NewExample()
		} else {
			logger = zap.NewNop()
		}
		return loadDirectory()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	facilitiesCmd.Flags().StringVar(&facilityType, "type", "", "Facility type (hospital, health_center, clinic, pharmacy, laboratory)")
	facilitiesCmd.Flags().StringVar(&facilityBarangay, "barangay", "", "Barangay name")
	facilitiesCmd.Flags().StringVar(&facilityService, "service", "", "Offered service")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results")
	contactsCmd.Flags().StringVar(&contactCategory, "category", "", "Contact category")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(facilitiesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(barangaysCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(dialCmd)
}

func loadDirectory() error {
	if dir != nil {
		return nil
	}
	d, err := directory.Load()
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}
	dir = d
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
