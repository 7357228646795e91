package services

import "errors"

// Sentinel errors returned by the services. Callers match them with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrFamilyNotFound       = errors.New("family not found")
	ErrPersonNotFound       = errors.New("person not found")
	ErrRelationshipNotFound = errors.New("relationship not found")
	ErrRelationshipExists   = errors.New("relationship already exists")
)
