package usecase

import (
	"errors"

	"github.com/google/uuid"
)

var errNilUUID = errors.New("nil uuid")

// parseUUID rejects the zero UUID as well as malformed input.
func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errNilUUID
	}
	return id, nil
}
