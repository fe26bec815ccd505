package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"equipment-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	cursorPrefix = "v1:"
	uuidTextLen  = 36
)

// Cursor is the keyset position after the last row of a page, ordered by (start_time, id).
type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor truncates to microseconds, the precision PostgreSQL stores.
func EncodeAfterCursor(start time.Time, id uuid.UUID) string {
	raw := cursorPrefix + strconv.FormatInt(start.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor is not base64url")
	}

	body, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return time.Time{}, uuid.Nil, errs.New("unsupported cursor version")
	}
	// the timestamp may be negative, so split off the fixed-width id from the right
	sep := len(body) - uuidTextLen - 1
	if sep < 1 || body[sep] != '-' {
		return time.Time{}, uuid.Nil, errs.New("cursor must be <micros>-<uuid>")
	}
	micros, rawID := body[:sep], body[sep+1:]

	us, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor timestamp")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor id")
	}
	return time.UnixMicro(us).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
