package service

import (
	"errors"

	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

func isServiceError(err error) bool {
	var svcErr *serviceerrors.ServiceError
	return errors.As(err, &svcErr)
}

// isAmbiguousOutcome reports whether a unit of work may have been partially
// applied.
func isAmbiguousOutcome(err error) bool {
	return errors.Is(err, serviceerrors.ErrCommitOutcomeUnknown) ||
		errors.Is(err, serviceerrors.ErrRollbackIncomplete)
}

// translateStoreError keeps domain errors, reports ambiguous outcomes as
// partial failures and everything else as an unavailable store.
func translateStoreError(err error, step string, attempted map[string]any) error {
	if isAmbiguousOutcome(err) {
		details := make(map[string]any, len(attempted)+1)
		for k, v := range attempted {
			details[k] = v
		}
		details["failed_step"] = step
		return serviceerrors.NewPartialFailureError("operation may have been partially applied", details, err)
	}
	if isServiceError(err) {
		return err
	}
	return serviceerrors.NewStoreUnavailableError(step, err)
}
