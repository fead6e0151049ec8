package mapper

import (
	"errors"

	apierrors "github.com/Apurer/dbmodel-tracking/internal/shared/errors"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

// ProblemFromError maps tracking precondition failures onto HTTP problems:
// a missing identity is a 401 and an update on untracked data is a 422.
func ProblemFromError(err error) (apierrors.ProblemDetail, bool) {
	var argErr *trackingdomain.ArgumentError
	if !errors.As(err, &argErr) {
		return apierrors.ProblemDetail{}, false
	}
	switch {
	case errors.Is(err, trackingdomain.ErrMissingIdentity):
		return apierrors.ErrUnauthorized.
			WithDetail("a caller identity is required to record changes").
			WithExtension("param", argErr.Param), true
	case errors.Is(err, trackingdomain.ErrMissingEntityInfo):
		return apierrors.ErrUnprocessable.
			WithDetail("the entity has no tracking metadata to update").
			WithExtension("param", argErr.Param), true
	default:
		return apierrors.ErrValidation.WithDetail(argErr.Error()).WithExtension("param", argErr.Param), true
	}
}
