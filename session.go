package lifted

import (
	"github.com/google/uuid"
)

// SessionID identifies one mounted workout session.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}
