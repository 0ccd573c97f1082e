package prayerlog

import (
	"errors"

	"prayerlog/internal/db"
	"prayerlog/internal/journal"
)

// Stable labels for logs and HTTP error bodies.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindStorage    = "storage"
	KindUnexpected = "unexpected"
)

// ErrorKind classifies err into one of the Kind labels.
func ErrorKind(err error) string {
	var validation *journal.ValidationError
	var storage *db.StorageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return KindValidation
	case errors.Is(err, journal.ErrNotFound):
		return KindNotFound
	case errors.As(err, &storage):
		return KindStorage
	default:
		return KindUnexpected
	}
}
