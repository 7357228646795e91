package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/kinship"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func newRelationsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "relations <root-person-id>",
		Short: "Show how everyone is related to one person",
		Long: `Labels every member of the family from the point of view of the root person.

Examples:
  kudumbam --family Xk3... relations <person-id>
  kudumbam --family Xk3... relations <person-id> --format list
  kudumbam --family Xk3... relations <person-id> --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(relationFormats, format) {
				return fmt.Errorf("invalid format: %s (valid: %s)", format, strings.Join(relationFormats, ", "))
			}
			return runRelations(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "tree", "Output format: tree, list, json")

	return cmd
}

func runRelations(cmd *cobra.Command, rootID, format string) error {
	ctx := cmd.Context()

	return withFamily(ctx, func(d *Deps, token string) error {
		data, view, err := d.Relations.HandleComputeWithFamily(ctx, token, rootID)
		if err != nil {
			return fmt.Errorf("computing relations: %w", err)
		}

		if len(view.Relations) == 0 {
			fmt.Printf("No person %s in this family\n", rootID)
			return nil
		}

		return printRelations(os.Stdout, data, view, format)
	})
}

// relationRow is one labelled person, ready for printing.
type relationRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

// relationRows lists the labelled persons other than the root, ordered by label then name,
// and the names of everyone left unlabelled.
func relationRows(data *entities.FamilyData, view *services.RelationView) (rows []relationRow, unrelated []string) {
	for i := range data.Persons {
		p := &data.Persons[i]
		if p.ID == view.Root {
			continue
		}
		entry, ok := view.Relations[p.ID]
		if !ok {
			unrelated = append(unrelated, p.DisplayName())
			continue
		}
		rows = append(rows, relationRow{
			ID:      p.ID,
			Name:    p.DisplayName(),
			Label:   string(entry.Label),
			Display: entry.Display,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Display != rows[j].Display {
			return rows[i].Display < rows[j].Display
		}
		return rows[i].Name < rows[j].Name
	})
	sort.Strings(unrelated)
	return rows, unrelated
}

func printRelations(w io.Writer, data *entities.FamilyData, view *services.RelationView, format string) error {
	switch format {
	case "json":
		return printRelationsJSON(w, view)
	case "list":
		return printRelationsList(w, data, view)
	default:
		return printRelationsTree(w, data, view)
	}
}

func printRelationsJSON(w io.Writer, view *services.RelationView) error {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printRelationsList(w io.Writer, data *entities.FamilyData, view *services.RelationView) error {
	rows, _ := relationRows(data, view)
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Label, r.Name); err != nil {
			return err
		}
	}
	return nil
}

func printRelationsTree(w io.Writer, data *entities.FamilyData, view *services.RelationView) error {
	rows, unrelated := relationRows(data, view)
	names := personNames(data.Persons)

	if _, err := fmt.Fprintf(w, "%s (%s)\n", names[view.Root], kinship.DisplayName(kinship.LabelSelf)); err != nil {
		return err
	}
	for i, r := range rows {
		prefix := "+-"
		if i == len(rows)-1 {
			prefix = "\\-"
		}
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", prefix, r.Display, r.Name); err != nil {
			return err
		}
	}

	if len(unrelated) > 0 {
		if _, err := fmt.Fprintf(w, "\nNot connected: %s\n", strings.Join(unrelated, ", ")); err != nil {
			return err
		}
	}
	return nil
}
