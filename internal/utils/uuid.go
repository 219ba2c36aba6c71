package utils

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-record-sync/models"
)

// UUIDGenerator issues time-ordered identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh identifier from [models.NewID].
func (g *UUIDGenerator) Generate() string {
	return models.NewID()
}

// Valid reports whether id is a UUID in its canonical textual form.
func (g *UUIDGenerator) Valid(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
