package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceKey is the opaque credential an irrigation controller presents in
// the X-API-Key header. Only the SHA-256 hash is stored; the raw key is
// returned once at creation time.
type DeviceKey struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	KeyHash   string    `json:"-"`
	KeyPrefix string    `json:"key_prefix"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
