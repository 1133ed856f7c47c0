package entity

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a short random id shared by offers and counters. Eight hex
// characters keep ids readable in notifications and CSV exports while
// leaving collisions negligible at this scale.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:8]
}
