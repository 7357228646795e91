// Package main provides the entry point for the kudumbam CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version      = "0.1.0-dev"
	globalConfig string
	globalFamily string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "kudumbam",
		Short:         "A shared family tree that works out how everyone is related",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "Config file (default: ./"+defaultConfigName+" when present)")
	rootCmd.PersistentFlags().StringVar(&globalFamily, "family", "", "Family token to operate on")

	rootCmd.AddCommand(
		newServeCmd(),
		newConfigCmd(),
		newFamilyCmd(),
		newPersonCmd(),
		newRelateCmd(),
		newRelationsCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
