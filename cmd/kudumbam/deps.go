package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Sid-0307/Kudumbam/internal/application/handlers"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/httpapi"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/logging"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/photostore/s3"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/cached"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/postgres"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Logger        *slog.Logger
	Families      *handlers.FamilyHandler
	Persons       *handlers.PersonHandler
	Relationships *handlers.RelationshipHandler
	Layout        *handlers.LayoutHandler
	Relations     *handlers.RelationsHandler
	Imports       *handlers.ImportHandler
}

// HTTPHandlers returns the handler set the HTTP router dispatches to.
func (d *Deps) HTTPHandlers() httpapi.Handlers {
	return httpapi.Handlers{
		Families:      d.Families,
		Persons:       d.Persons,
		Relationships: d.Relationships,
		Layout:        d.Layout,
		Relations:     d.Relations,
	}
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log, os.Stderr)

	relationalDB, err := openRelationalDB(cfg.Database)
	if err != nil {
		return err
	}
	defer relationalDB.Close()

	// Ensure schema exists
	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring %s schema: %w", cfg.Database.Driver, err)
	}

	store, err := cached.New(relationalDB, cfg.Cache.Families)
	if err != nil {
		return err
	}

	photos, err := openPhotoStore(cfg.Photos)
	if err != nil {
		return err
	}
	if photos == nil {
		logger.Debug("photo store disabled, photo references are stored as given")
	}

	familyService := services.NewFamilyService(store)
	personService := services.NewPersonService(store, familyService, photos)
	relationshipService := services.NewRelationshipService(store, familyService)
	deps := &Deps{
		Config:        cfg,
		Logger:        logger,
		Families:      handlers.NewFamilyHandler(familyService),
		Persons:       handlers.NewPersonHandler(personService),
		Relationships: handlers.NewRelationshipHandler(relationshipService),
		Layout:        handlers.NewLayoutHandler(services.NewLayoutService(store, familyService)),
		Relations: handlers.NewRelationsHandler(
			services.NewRelationService(familyService),
			services.NewDiagramService(familyService),
		),
		Imports: handlers.NewImportHandler(
			services.NewImportService(familyService, personService, relationshipService),
		),
	}

	return fn(deps)
}

// withFamily is withDeps for commands that operate on the --family token.
func withFamily(ctx context.Context, fn func(d *Deps, token string) error) error {
	if globalFamily == "" {
		return errors.New("family is required (use --family flag)")
	}
	return withDeps(ctx, func(d *Deps) error {
		return fn(d, globalFamily)
	})
}

// loadConfig reads --config, or the default file in the working directory when it exists.
func loadConfig() (*config.Config, error) {
	path := globalConfig
	if path == "" {
		if _, err := os.Stat(defaultConfigName); err == nil {
			path = defaultConfigName
		}
	}
	return config.Load(path)
}

func openRelationalDB(cfg config.DatabaseConfig) (ports.RelationalDB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		repo, err := postgres.NewRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating postgres repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.NewRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		return repo, nil
	}
}

// openPhotoStore returns nil when no photo bucket is configured.
func openPhotoStore(cfg config.PhotosConfig) (ports.PhotoStore, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	store, err := s3.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating photo store: %w", err)
	}
	return store, nil
}
