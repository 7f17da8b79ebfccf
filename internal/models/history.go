package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryCapacity is the number of past generations kept by the client.
const HistoryCapacity = 20

// HistoryEntry is one past successful generation.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Career    string    `json:"career"`
	Mode      Mode      `json:"mode"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
