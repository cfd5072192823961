package services

import (
	"errors"

	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
)

func failed[T any](err error) (commons.Response[T], error) {
	return commons.ErrorResponse[T](domain.MessageOf(err)), err
}

func validationFailed[T any](err error) (commons.Response[T], error) {
	return commons.ErrorResponse[T]("validation failed", err.Error()), domain.BusinessRule("%s", err.Error())
}

// lookupError turns a repository error into NotFound or an opaque Internal error.
func lookupError(err error, notFound string, unavailable string) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.NotFound("%s", notFound)
	}
	return domain.Internal(unavailable, err)
}
