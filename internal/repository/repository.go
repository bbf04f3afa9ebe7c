package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a lookup matches no document. Mongo's
// ErrNoDocuments stays inside this package.
var ErrNotFound = errors.New("document not found")

// IsDuplicate reports whether err came from a unique-index violation. The
// unique indexes on users.email and appointments (doctorId, dateTime) turn
// check-then-insert races into this error.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
