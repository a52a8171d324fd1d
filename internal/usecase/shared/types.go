package shared

import (
	"github.com/google/uuid"
)

// OrderRecord is the write-side view of a paid checkout session.
type OrderRecord struct {
	SessionID     string
	UserID        *uuid.UUID
	CustomerEmail string
	Mode          string
	TotalCents    int64
	Currency      string
	DiscountCode  string
}
