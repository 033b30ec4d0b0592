package pkguid

import "github.com/google/uuid"

// UUID generates RFC 9562 version 7 UUID strings, used for file ids and
// correlation ids.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. It falls back to a random version 4
// UUID if the clock based version 7 cannot be produced.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
