package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/application/handlers"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

type importFlags struct {
	format string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import persons and relationships from JSON or CSV",
		Long: `Imports a family from a structured file.

JSON files use the layout written by "kudumbam export --format json". CSV files have one
person per row with the columns id, name, alias, age, gender, parents and spouses, where
parents and spouses hold ";"-separated ids of other rows.

Without --family a new family is created and its token printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	if globalFamily == "" && flags.dryRun {
		return errors.New("family is required for --dry-run (use --family flag)")
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		token := globalFamily
		if token == "" {
			res, err := d.Families.HandleCreate(ctx)
			if err != nil {
				return fmt.Errorf("creating family: %w", err)
			}
			token = res.Token
			fmt.Printf("Created family: %s\n", token)
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.Imports.Handle(ctx, token, filePath, handlers.ImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		printImportResult(os.Stdout, result, flags.dryRun)
		return nil
	})
}

func printImportResult(w io.Writer, result *services.ImportResult, dryRun bool) {
	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\nValidation errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	fmt.Fprintln(w)
	if dryRun {
		fmt.Fprintf(w, "Dry run: %d persons and %d relationships would be imported", result.Persons, result.Relationships)
	} else {
		fmt.Fprintf(w, "Imported: %d persons, %d relationships", result.Persons, result.Relationships)
	}

	if result.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped (duplicates)", result.Skipped)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, ", %d errors", len(result.Errors))
	}

	fmt.Fprintln(w)
}
