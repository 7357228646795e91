package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

func newFamilyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Create and inspect families",
	}

	cmd.AddCommand(newFamilyCreateCmd(), newFamilyShowCmd())

	return cmd
}

func newFamilyCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new family",
		Long:  "Creates an empty family and prints its share token. Anyone with the token can edit the family.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Families.HandleCreate(cmd.Context())
				if err != nil {
					return fmt.Errorf("creating family: %w", err)
				}
				fmt.Printf("Created family: %s\n", res.Token)
				return nil
			})
		},
	}
}

func newFamilyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [token]",
		Short: "Show the members and relationships of a family",
		Long: `Prints every member and relationship of a family.

Examples:
  kudumbam family show Xk3...
  kudumbam --family Xk3... family show`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				globalFamily = args[0]
			}
			return withFamily(cmd.Context(), func(d *Deps, token string) error {
				data, err := d.Families.HandleGet(cmd.Context(), token)
				if err != nil {
					return fmt.Errorf("loading family: %w", err)
				}
				printFamily(os.Stdout, data)
				return nil
			})
		},
	}
}

func printFamily(w io.Writer, data *entities.FamilyData) {
	names := personNames(data.Persons)

	fmt.Fprintf(w, "Family %s (created %s)\n", data.Family.Token, data.Family.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "\nMembers (%d):\n", len(data.Persons))
	for _, p := range data.Persons {
		fmt.Fprintf(w, "  %s  %s%s\n", p.ID, p.DisplayName(), personDetails(p))
	}

	fmt.Fprintf(w, "\nRelationships (%d):\n", len(data.Relationships))
	for _, r := range data.Relationships {
		verb := "is parent of"
		if r.RelationType == entities.RelationSpouse {
			verb = "is married to"
		}
		fmt.Fprintf(w, "  %s  %s %s %s\n", r.ID, names[r.PersonA], verb, names[r.PersonB])
	}
}

func personDetails(p entities.Person) string {
	details := ""
	if p.Gender != entities.GenderUnknown {
		details += " " + string(p.Gender)
	}
	if p.Age != nil {
		details += fmt.Sprintf(" %d", *p.Age)
	}
	if details == "" {
		return ""
	}
	return " (" + details[1:] + ")"
}

func personNames(persons []entities.Person) map[string]string {
	names := make(map[string]string, len(persons))
	for i := range persons {
		names[persons[i].ID] = persons[i].DisplayName()
	}
	return names
}
