// Package sqlstore implements ports.RelationalDB over database/sql. The SQLite and
// Postgres repositories share it and differ only in their Dialect and schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// Dialect captures the driver differences the shared queries care about.
type Dialect struct {
	Name string
	// NumberedParams switches `?` placeholders to `$1, $2, ...`.
	NumberedParams bool
	// IsUniqueViolation reports whether err came from a unique constraint.
	IsUniqueViolation func(error) bool
}

// Store holds the queries common to every SQL backend.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rebind rewrites `?` placeholders for dialects that use numbered parameters.
func (s *Store) Rebind(query string) string {
	if !s.dialect.NumberedParams {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.Rebind(query), args...)
}

func (s *Store) wrapWrite(op string, err error) error {
	if s.dialect.IsUniqueViolation != nil && s.dialect.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ports.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// SaveFamily inserts a new family.
func (s *Store) SaveFamily(ctx context.Context, f *entities.Family) error {
	_, err := s.exec(ctx, `INSERT INTO families (id, token, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Token, f.CreatedAt.UTC())
	if err != nil {
		return s.wrapWrite("saving family", err)
	}
	return nil
}

// FindFamilyByToken finds a family by its share token.
func (s *Store) FindFamilyByToken(ctx context.Context, token string) (*entities.Family, error) {
	row := s.db.QueryRowContext(ctx, s.Rebind(`SELECT id, token, created_at FROM families WHERE token = ?`), token)

	var f entities.Family
	err := row.Scan(&f.ID, &f.Token, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning family: %w", err)
	}
	return &f, nil
}

const personColumns = `id, family_id, name, alias, age, gender, photo_url, created_at`

// SavePerson inserts a new person.
func (s *Store) SavePerson(ctx context.Context, p *entities.Person) error {
	_, err := s.exec(ctx, `INSERT INTO persons (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FamilyID, p.Name, p.Alias, nullableAge(p.Age), string(p.Gender), p.PhotoURL, p.CreatedAt.UTC())
	if err != nil {
		return s.wrapWrite("saving person", err)
	}
	return nil
}

// UpdatePerson overwrites the mutable fields of an existing person.
func (s *Store) UpdatePerson(ctx context.Context, p *entities.Person) error {
	_, err := s.exec(ctx, `
		UPDATE persons SET name = ?, alias = ?, age = ?, gender = ?, photo_url = ?
		WHERE id = ? AND family_id = ?`,
		p.Name, p.Alias, nullableAge(p.Age), string(p.Gender), p.PhotoURL, p.ID, p.FamilyID)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	return nil
}

// FindPersonByID finds a person within a family.
func (s *Store) FindPersonByID(ctx context.Context, familyID, id string) (*entities.Person, error) {
	row := s.db.QueryRowContext(ctx,
		s.Rebind(`SELECT `+personColumns+` FROM persons WHERE family_id = ? AND id = ?`), familyID, id)

	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return p, nil
}

// ListPersons lists the persons of a family ordered by creation time.
func (s *Store) ListPersons(ctx context.Context, familyID string) ([]entities.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		s.Rebind(`SELECT `+personColumns+` FROM persons WHERE family_id = ? ORDER BY created_at ASC, id ASC`), familyID)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	result := []entities.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// DeletePerson deletes a person together with their relationships and saved position
// in one transaction.
func (s *Store) DeletePerson(ctx context.Context, familyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.Rebind(`
		DELETE FROM relationships WHERE family_id = ? AND (person_a = ? OR person_b = ?)`),
		familyID, id, id); err != nil {
		return fmt.Errorf("deleting relationships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.Rebind(`
		DELETE FROM node_positions WHERE family_id = ? AND person_id = ?`), familyID, id); err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.Rebind(`DELETE FROM persons WHERE family_id = ? AND id = ?`), familyID, id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing person delete: %w", err)
	}
	return nil
}

const relationshipColumns = `id, family_id, person_a, person_b, relation_type, created_at`

// SaveRelationship inserts a new relationship.
func (s *Store) SaveRelationship(ctx context.Context, r *entities.Relationship) error {
	_, err := s.exec(ctx, `INSERT INTO relationships (`+relationshipColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.FamilyID, r.PersonA, r.PersonB, string(r.RelationType), r.CreatedAt.UTC())
	if err != nil {
		return s.wrapWrite("saving relationship", err)
	}
	return nil
}

// FindRelationship finds the edge of the given type from personA to personB.
func (s *Store) FindRelationship(ctx context.Context, familyID, personA, personB string, relType entities.RelationType) (*entities.Relationship, error) {
	row := s.db.QueryRowContext(ctx, s.Rebind(`
		SELECT `+relationshipColumns+` FROM relationships
		WHERE family_id = ? AND person_a = ? AND person_b = ? AND relation_type = ?`),
		familyID, personA, personB, string(relType))
	return s.oneRelationship(row)
}

// FindRelationshipByID finds a relationship within a family.
func (s *Store) FindRelationshipByID(ctx context.Context, familyID, id string) (*entities.Relationship, error) {
	row := s.db.QueryRowContext(ctx,
		s.Rebind(`SELECT `+relationshipColumns+` FROM relationships WHERE family_id = ? AND id = ?`), familyID, id)
	return s.oneRelationship(row)
}

func (s *Store) oneRelationship(row *sql.Row) (*entities.Relationship, error) {
	r, err := scanRelationship(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}
	return r, nil
}

// ListRelationships lists every relationship of a family.
func (s *Store) ListRelationships(ctx context.Context, familyID string) ([]entities.Relationship, error) {
	rows, err := s.db.QueryContext(ctx,
		s.Rebind(`SELECT `+relationshipColumns+` FROM relationships WHERE family_id = ? ORDER BY created_at ASC, id ASC`), familyID)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	result := []entities.Relationship{}
	for rows.Next() {
		r, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

// DeleteRelationship deletes a relationship from a family.
func (s *Store) DeleteRelationship(ctx context.Context, familyID, id string) error {
	if _, err := s.exec(ctx, `DELETE FROM relationships WHERE family_id = ? AND id = ?`, familyID, id); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return nil
}

// ReplacePositions atomically replaces all saved node positions of a family.
func (s *Store) ReplacePositions(ctx context.Context, familyID string, positions []entities.NodePosition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.Rebind(`DELETE FROM node_positions WHERE family_id = ?`), familyID); err != nil {
		return fmt.Errorf("clearing positions: %w", err)
	}

	if len(positions) > 0 {
		stmt, err := tx.PrepareContext(ctx, s.Rebind(`
			INSERT INTO node_positions (family_id, person_id, x, y, updated_at) VALUES (?, ?, ?, ?, ?)`))
		if err != nil {
			return fmt.Errorf("preparing position insert: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, p := range positions {
			if _, err := stmt.ExecContext(ctx, familyID, p.PersonID, p.X, p.Y, now); err != nil {
				return s.wrapWrite("inserting position", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing positions: %w", err)
	}
	return nil
}

// ListPositions lists the saved node positions of a family.
func (s *Store) ListPositions(ctx context.Context, familyID string) ([]entities.NodePosition, error) {
	rows, err := s.db.QueryContext(ctx,
		s.Rebind(`SELECT person_id, x, y FROM node_positions WHERE family_id = ? ORDER BY person_id ASC`), familyID)
	if err != nil {
		return nil, fmt.Errorf("querying positions: %w", err)
	}
	defer rows.Close()

	result := []entities.NodePosition{}
	for rows.Next() {
		var p entities.NodePosition
		if err := rows.Scan(&p.PersonID, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*entities.Person, error) {
	var (
		p      entities.Person
		age    sql.NullInt64
		gender string
	)
	if err := row.Scan(&p.ID, &p.FamilyID, &p.Name, &p.Alias, &age, &gender, &p.PhotoURL, &p.CreatedAt); err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	p.Gender = entities.Gender(gender)
	return &p, nil
}

func scanRelationship(row scanner) (*entities.Relationship, error) {
	var (
		r       entities.Relationship
		relType string
	)
	if err := row.Scan(&r.ID, &r.FamilyID, &r.PersonA, &r.PersonB, &relType, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.RelationType = entities.RelationType(relType)
	return &r, nil
}

func nullableAge(age *int) sql.NullInt64 {
	if age == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*age), Valid: true}
}
