package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

type exportFlags struct {
	format string
	output string
	root   string
}

type exporter struct {
	format string
	output string
}

// exportPerson is one exported member, optionally labelled from a root person.
type exportPerson struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Alias    string `json:"alias,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Relation string `json:"relation,omitempty"`
}

type exportRelationship struct {
	ID      string `json:"id"`
	PersonA string `json:"person_a"`
	PersonB string `json:"person_b"`
	Type    string `json:"relation_type"`
}

type exportDoc struct {
	Family        string               `json:"family"`
	Root          string               `json:"root,omitempty"`
	Persons       []exportPerson       `json:"persons"`
	Relationships []exportRelationship `json:"relationships"`
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a family to file",
		Long: `Exports the members and relationships of a family to JSON, CSV, or markdown.
With --root, every member is labelled with their relation to that person.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.root, "root", "r", "", "Label members relative to this person")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withFamily(ctx, func(d *Deps, token string) error {
		data, err := d.Families.HandleGet(ctx, token)
		if err != nil {
			return fmt.Errorf("loading family: %w", err)
		}

		var view *services.RelationView
		if flags.root != "" {
			view, err = d.Relations.HandleCompute(ctx, token, flags.root)
			if err != nil {
				return fmt.Errorf("computing relations: %w", err)
			}
		}

		e := &exporter{format: flags.format, output: flags.output}
		return e.export(buildExportDoc(data, view))
	})
}

func buildExportDoc(data *entities.FamilyData, view *services.RelationView) *exportDoc {
	doc := &exportDoc{
		Family:        data.Family.Token,
		Persons:       make([]exportPerson, 0, len(data.Persons)),
		Relationships: make([]exportRelationship, 0, len(data.Relationships)),
	}
	if view != nil {
		doc.Root = view.Root
	}

	for _, p := range data.Persons {
		ep := exportPerson{
			ID:       p.ID,
			Name:     p.Name,
			Alias:    p.Alias,
			Age:      p.Age,
			Gender:   string(p.Gender),
			PhotoURL: p.PhotoURL,
		}
		if view != nil {
			ep.Relation = view.Relations[p.ID].Display
		}
		doc.Persons = append(doc.Persons, ep)
	}

	for _, r := range data.Relationships {
		doc.Relationships = append(doc.Relationships, exportRelationship{
			ID:      r.ID,
			PersonA: r.PersonA,
			PersonB: r.PersonB,
			Type:    string(r.RelationType),
		})
	}
	return doc
}

func (e *exporter) export(doc *exportDoc) (err error) {
	var w io.Writer
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := e.formatDoc(w, doc); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Printf("Exported %d persons to %s\n", len(doc.Persons), e.output)
	}

	return nil
}

func (e *exporter) formatDoc(w io.Writer, doc *exportDoc) error {
	switch e.format {
	case "json":
		return formatJSON(w, doc)
	case "csv":
		return formatCSV(w, doc)
	case "markdown":
		return formatMarkdown(w, doc)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

func formatJSON(w io.Writer, doc *exportDoc) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// formatCSV writes one row per person. Relationships are expressed as parent and spouse columns.
func formatCSV(w io.Writer, doc *exportDoc) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "name", "alias", "age", "gender", "parents", "spouses"}
	if doc.Root != "" {
		header = append(header, "relation")
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	parents, spouses := adjacency(doc.Relationships)
	for _, p := range doc.Persons {
		age := ""
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		row := []string{
			p.ID,
			p.Name,
			p.Alias,
			age,
			p.Gender,
			strings.Join(parents[p.ID], ";"),
			strings.Join(spouses[p.ID], ";"),
		}
		if doc.Root != "" {
			row = append(row, p.Relation)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, doc *exportDoc) error {
	if _, err := fmt.Fprintf(w, "# Family %s\n\nTotal: %d persons, %d relationships\n\n",
		doc.Family, len(doc.Persons), len(doc.Relationships)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Alias | Age | Gender | Relation |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|-------|-----|--------|----------|\n"); err != nil {
		return err
	}

	for _, p := range doc.Persons {
		age := ""
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			escapeMarkdown(p.Name),
			escapeMarkdown(p.Alias),
			age,
			p.Gender,
			escapeMarkdown(p.Relation),
		); err != nil {
			return err
		}
	}

	return nil
}

// adjacency returns, per person id, the ids of their parents and spouses.
func adjacency(rels []exportRelationship) (parents, spouses map[string][]string) {
	parents = make(map[string][]string)
	spouses = make(map[string][]string)
	for _, r := range rels {
		switch entities.RelationType(r.Type) {
		case entities.RelationParent:
			parents[r.PersonB] = append(parents[r.PersonB], r.PersonA)
		case entities.RelationSpouse:
			spouses[r.PersonA] = append(spouses[r.PersonA], r.PersonB)
			spouses[r.PersonB] = append(spouses[r.PersonB], r.PersonA)
		}
	}
	return parents, spouses
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
