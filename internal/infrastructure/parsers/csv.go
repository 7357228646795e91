package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses one person per row.
// Expected columns: id, name, alias, age, gender, parents, spouses.
// parents and spouses hold ";"-separated ids of other rows.
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed family.
func (p *CSVParser) Parse(r io.Reader) (*RawFamily, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	requiredCols := []string{"id", "name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows, turning the parents and spouses columns into edges.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) (*RawFamily, error) {
	family := &RawFamily{}
	seenSpouses := make(map[[2]string]bool)
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		person, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		family.Persons = append(family.Persons, person)

		for _, parent := range splitIDs(getColumn(record, colIndex, "parents")) {
			family.Relationships = append(family.Relationships, RawRelationship{
				PersonA: parent, PersonB: person.ID, Type: "parent", LineNum: lineNum,
			})
		}
		for _, spouse := range splitIDs(getColumn(record, colIndex, "spouses")) {
			key := [2]string{person.ID, spouse}
			if spouse < person.ID {
				key = [2]string{spouse, person.ID}
			}
			if seenSpouses[key] {
				continue
			}
			seenSpouses[key] = true
			family.Relationships = append(family.Relationships, RawRelationship{
				PersonA: person.ID, PersonB: spouse, Type: "spouse", LineNum: lineNum,
			})
		}
	}

	return family, nil
}

// parseRecord converts a CSV record to a RawPerson.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawPerson, error) {
	person := RawPerson{
		ID:       getColumn(record, colIndex, "id"),
		Name:     getColumn(record, colIndex, "name"),
		Alias:    getColumn(record, colIndex, "alias"),
		Gender:   getColumn(record, colIndex, "gender"),
		PhotoURL: getColumn(record, colIndex, "photo_url"),
		LineNum:  lineNum,
	}

	ageStr := getColumn(record, colIndex, "age")
	if ageStr != "" {
		age, err := strconv.Atoi(ageStr)
		if err != nil {
			return RawPerson{}, fmt.Errorf("line %d: invalid age value %q: %w", lineNum, ageStr, err)
		}
		person.Age = &age
	}

	return person, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ";") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
