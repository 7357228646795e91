package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

// storePhoto uploads inline data: URLs to the photo store and returns the reference
// to persist. Anything else, and every reference when no store is configured, is kept.
func (s *PersonService) storePhoto(ctx context.Context, p *entities.Person, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if s.photos == nil || !strings.HasPrefix(ref, "data:") {
		return ref, nil
	}

	contentType, data, err := decodeDataURL(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := fmt.Sprintf("%s/%s%s", p.FamilyID, p.ID, extensionFor(contentType))
	url, err := s.photos.Put(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("uploading photo: %w", err)
	}
	return url, nil
}

// decodeDataURL parses data:<type>;base64,<payload>.
func decodeDataURL(ref string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return "", nil, errors.New("malformed data URL")
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, errors.New("data URL must be base64 encoded")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("unsupported photo type %q", contentType)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding photo: %w", err)
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
