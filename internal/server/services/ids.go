package services

import "github.com/google/uuid"

// validID reports whether id can name a stored row. Malformed ids are
// treated as absent rather than sent to the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
