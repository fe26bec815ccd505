package shared

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord remembers which reservation an Idempotency-Key produced.
// ResultReservationID stays nil while the first request is still in flight.
type IdempotencyRecord struct {
	Key                 uuid.UUID
	Endpoint            string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
