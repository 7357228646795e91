package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/application/handlers"
	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

type personFlags struct {
	name      string
	alias     string
	age       int
	gender    string
	photo     string
	photoFile string
}

func (f *personFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.alias, "alias", "", "Preferred display name")
	cmd.Flags().IntVar(&f.age, "age", 0, "Age in years (0-200)")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender: M, F, or empty for unknown")
	cmd.Flags().StringVar(&f.photo, "photo", "", "Photo URL")
	cmd.Flags().StringVar(&f.photoFile, "photo-file", "", "Image file to upload to the photo store")
}

// photoRef returns the photo reference to send, reading --photo-file into a data URL.
func (f *personFlags) photoRef() (string, error) {
	if f.photoFile == "" {
		return f.photo, nil
	}
	data, err := os.ReadFile(f.photoFile)
	if err != nil {
		return "", fmt.Errorf("reading photo: %w", err)
	}
	return dataURL(data), nil
}

func dataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func newPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage the members of a family",
	}

	cmd.AddCommand(
		newPersonAddCmd(),
		newPersonUpdateCmd(),
		newPersonDeleteCmd(),
		newPersonListCmd(),
	)

	return cmd
}

func newPersonAddCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person to a family",
		Long: `Adds a person to the family given by --family.

Examples:
  kudumbam --family Xk3... person add --name "Mary Thomas" --gender F --age 54
  kudumbam --family Xk3... person add --name "Joseph" --alias Appachan --photo-file joseph.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := flags.photoRef()
			if err != nil {
				return err
			}
			req := handlers.CreatePersonRequest{
				FamilyToken: globalFamily,
				Name:        flags.name,
				Alias:       flags.alias,
				Gender:      flags.gender,
				PhotoURL:    photo,
			}
			if cmd.Flags().Changed("age") {
				req.Age = &flags.age
			}

			return withFamily(cmd.Context(), func(d *Deps, token string) error {
				p, err := d.Persons.HandleCreate(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("adding person: %w", err)
				}
				fmt.Printf("Added person: %s (%s)\n", p.ID, p.DisplayName())
				return nil
			})
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPersonUpdateCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "update <person-id>",
		Short: "Update a person",
		Long:  "Updates only the fields whose flags are given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := handlers.UpdatePersonRequest{FamilyToken: globalFamily}
			changed := cmd.Flags().Changed
			if changed("name") {
				req.Name = &flags.name
			}
			if changed("alias") {
				req.Alias = &flags.alias
			}
			if changed("age") {
				req.Age = &flags.age
			}
			if changed("gender") {
				req.Gender = &flags.gender
			}
			if changed("photo") || changed("photo-file") {
				photo, err := flags.photoRef()
				if err != nil {
					return err
				}
				req.PhotoURL = &photo
			}

			return withFamily(cmd.Context(), func(d *Deps, token string) error {
				p, err := d.Persons.HandleUpdate(cmd.Context(), args[0], req)
				if err != nil {
					return fmt.Errorf("updating person: %w", err)
				}
				fmt.Printf("Updated person: %s (%s)\n", p.ID, p.DisplayName())
				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newPersonDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <person-id>",
		Short: "Delete a person and all their relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFamily(cmd.Context(), func(d *Deps, token string) error {
				if err := d.Persons.HandleDelete(cmd.Context(), token, args[0]); err != nil {
					return fmt.Errorf("deleting person: %w", err)
				}
				fmt.Printf("Deleted person: %s\n", args[0])
				return nil
			})
		},
	}
}

func newPersonListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the members of a family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFamily(cmd.Context(), func(d *Deps, token string) error {
				persons, err := d.Persons.HandleList(cmd.Context(), token)
				if err != nil {
					return fmt.Errorf("listing persons: %w", err)
				}
				if len(persons) == 0 {
					fmt.Println("No persons in this family yet.")
					return nil
				}
				printPersons(persons)
				return nil
			})
		},
	}
}

func printPersons(persons []entities.Person) {
	fmt.Printf("%-36s  %-24s  %s\n", "ID", "NAME", "DETAILS")
	for _, p := range persons {
		fmt.Printf("%-36s  %-24s  %s\n", p.ID, p.DisplayName(), personDetails(p))
	}
}
