// Package errs is a thin facade over cockroachdb/errors. Usecases mark
// sentinel errors onto causes with Mark so handlers can classify with
// errors.Is while the full cause chain stays attached for logging.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr to err's Is chain without changing its message.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
