package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/Sid-0307/Kudumbam/internal/domain/services"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/parsers"
)

// ImportHandler handles importing families from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// Handle imports the persons and relationships in filePath into the family behind token.
func (h *ImportHandler) Handle(ctx context.Context, token, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("%w: unsupported format for file: %s", services.ErrInvalidInput, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return h.service.Import(ctx, token, raw, services.ImportOptions{DryRun: opts.DryRun})
}
