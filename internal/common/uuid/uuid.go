package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/Draft-Lab/panela-tracker/internal/common/uuid UUID

// UUID generates identifiers for newly created rows
type UUID interface {
	NewUUID() string
}

// RandomUUID implements UUID with random (v4) identifiers
type RandomUUID struct{}

func New() *RandomUUID {
	return &RandomUUID{}
}

// NewUUID returns a new random UUID string
func (d *RandomUUID) NewUUID() string {
	return uuid.NewString()
}
