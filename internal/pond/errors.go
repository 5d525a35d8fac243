package pond

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error engine bertipe supaya bisa diperiksa di test dan dipetakan ke HTTP
// status di handler: ValidationError 400, NotFoundError 404, InvariantError 409.

type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// InvariantError: operasi akan melanggar invarian ledger (populasi negatif,
// panen melebihi stok atau biomassa).
type InvariantError struct{ Msg string }

func (e *InvariantError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func invariantf(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// HTTPError memetakan error engine ke fiber.Error untuk response envelope.
func HTTPError(err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		iv *InvariantError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Msg)
	case errors.As(err, &nf):
		return fiber.NewError(fiber.StatusNotFound, nf.Msg)
	case errors.As(err, &iv):
		return fiber.NewError(fiber.StatusConflict, iv.Msg)
	case errors.As(err, &fe):
		return fe
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan tak terduga")
	}
}
