package logging

import (
	"regexp"

	"github.com/google/uuid"
)

var reRequestID = regexp.MustCompile(`^[0-9a-f]{8}(-[0-9a-f]{4}){3}-[0-9a-f]{12}$`)

// RequestID identifies one served request. It is a random UUID and can be
// used as a map key.
type RequestID uuid.UUID

// NewRequestID returns a new random RequestID.
func NewRequestID() RequestID {
	return RequestID(uuid.New())
}

// NilRequestID returns the all-zero RequestID.
func NilRequestID() RequestID {
	return RequestID(uuid.Nil)
}

// ParseRequestID parses the lower-case hyphenated form produced by String.
// Any other spelling, including upper case or missing hyphens, is rejected.
func ParseRequestID(s string) (RequestID, bool) {
	if !reRequestID.MatchString(s) {
		return RequestID{}, false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return RequestID{}, false
	}
	return RequestID(u), true
}

// IsNil reports whether id is the all-zero RequestID.
func (id RequestID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RequestID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id RequestID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
