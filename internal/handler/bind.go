package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mindthevirt/binge-master-api/internal/ierr"
)

// bindError keeps validator errors intact for per-field messages and folds
// everything else (malformed JSON, wrong types) into the validation sentinel.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return fmt.Errorf("%w: invalid request body", ierr.ErrValidation)
}
