// Package cached decorates a RelationalDB with an in-process family lookup cache.
package cached

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// DefaultSize is used when a non-positive cache size is requested.
const DefaultSize = 1024

// Repository serves FindFamilyByToken from an LRU and passes everything else through.
// Family tokens never change, so entries are never invalidated.
type Repository struct {
	ports.RelationalDB
	families *lru.Cache[string, entities.Family]
}

// New wraps next with a family cache holding up to size entries.
func New(next ports.RelationalDB, size int) (*Repository, error) {
	if size <= 0 {
		size = DefaultSize
	}
	families, err := lru.New[string, entities.Family](size)
	if err != nil {
		return nil, fmt.Errorf("creating family cache: %w", err)
	}
	return &Repository{RelationalDB: next, families: families}, nil
}

// SaveFamily saves the family and primes the cache.
func (r *Repository) SaveFamily(ctx context.Context, f *entities.Family) error {
	if err := r.RelationalDB.SaveFamily(ctx, f); err != nil {
		return err
	}
	r.families.Add(f.Token, *f)
	return nil
}

// FindFamilyByToken returns a cached family or loads it. Misses are not cached.
func (r *Repository) FindFamilyByToken(ctx context.Context, token string) (*entities.Family, error) {
	if f, ok := r.families.Get(token); ok {
		return &f, nil
	}

	f, err := r.RelationalDB.FindFamilyByToken(ctx, token)
	if err != nil || f == nil {
		return f, err
	}
	r.families.Add(token, *f)
	return f, nil
}

// Len returns the number of cached families.
func (r *Repository) Len() int {
	return r.families.Len()
}
