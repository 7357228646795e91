package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/application/handlers"
)

func newRelateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relate <person-a> <type> <person-b>",
		Short: "Create a relationship between two people",
		Long: `Creates a relationship between two members of the family given by --family.

Valid relationship types:
  - parent  (person-a is the parent of person-b)
  - spouse  (symmetric)

Examples:
  kudumbam --family Xk3... relate <mother-id> parent <child-id>
  kudumbam --family Xk3... relate <husband-id> spouse <wife-id>`,
		Args: cobra.ExactArgs(3),
		RunE: runRelate,
	}

	cmd.AddCommand(newRelateDeleteCmd())

	return cmd
}

func runRelate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	req := handlers.CreateRelationshipRequest{
		FamilyToken:  globalFamily,
		PersonA:      args[0],
		RelationType: args[1],
		PersonB:      args[2],
	}

	return withFamily(ctx, func(d *Deps, token string) error {
		rel, err := d.Relationships.HandleCreate(ctx, req)
		if err != nil {
			return fmt.Errorf("creating relationship: %w", err)
		}

		fmt.Printf("Created relationship: %s\n", rel.ID)
		fmt.Printf("  %s -[%s]-> %s\n", rel.PersonA, rel.RelationType, rel.PersonB)
		return nil
	})
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <relationship-id>",
		Short: "Delete a relationship",
		Long:  "Deletes an existing relationship by its ID.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelateDelete,
	}
}

func runRelateDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	relID := args[0]

	return withFamily(ctx, func(d *Deps, token string) error {
		if err := d.Relationships.HandleDelete(ctx, token, relID); err != nil {
			return fmt.Errorf("deleting relationship: %w", err)
		}

		fmt.Printf("Deleted relationship: %s\n", relID)
		return nil
	})
}
