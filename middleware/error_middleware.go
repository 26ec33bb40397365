package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"trip-planner/logging"
	"trip-planner/services"
	"trip-planner/utils/errors"
)

// ErrorMiddleware recovers panics and answers with a standardized JSON error
func ErrorMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logging.Noop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "panic recovered", logging.Any("panic", fmt.Sprint(rec)))
					WriteError(r.Context(), w, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ToAPIError maps domain errors onto their HTTP representation.
func ToAPIError(err error) *errors.APIError {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case stderrors.Is(err, services.ErrValidation), stderrors.Is(err, services.ErrCodec):
		return errors.WithDetails(errors.ErrValidation, err)
	case stderrors.Is(err, services.ErrConstraintViolation):
		return errors.WithDetails(errors.ErrConstraint, err)
	case stderrors.Is(err, services.ErrInsufficientData):
		return errors.WithDetails(errors.ErrInsufficientData, err)
	case stderrors.Is(err, services.ErrNotFound):
		return errors.WithDetails(errors.ErrNotFound, err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.WithDetails(errors.ErrBadGateway, err)
	}
	return errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
}

// WriteError writes err as an APIError JSON response
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	apiErr := ToAPIError(err)
	if apiErr.Status >= 500 {
		logging.FromContext(ctx).Error(ctx, "server error",
			logging.String("code", apiErr.Code), logging.String("details", apiErr.Details))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
