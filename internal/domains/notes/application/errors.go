package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid note input")
	// ErrUnauthenticated signals the change was attempted without a caller identity.
	ErrUnauthenticated = errors.New("caller identity required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, trackingdomain.ErrMissingIdentity) {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrEmptyTag) ||
		errors.Is(err, trackingdomain.ErrMissingEntityInfo) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
