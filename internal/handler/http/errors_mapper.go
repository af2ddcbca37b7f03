package http

import (
	"errors"
	"net/http"

	"github.com/aimplatform/reviewintel/internal/service"
	"github.com/aimplatform/reviewintel/internal/store"
)

// errorStatusMap translates the domain error taxonomy into HTTP statuses.
// Specific sentinels wrap one of the five base sentinels, so matching the
// bases covers the whole family; the service-layer entries catch errors
// that never touch the store.
var errorStatusMap = map[error]int{
	store.ErrValidation: http.StatusBadRequest,
	store.ErrAuth:       http.StatusUnauthorized,
	store.ErrNotFound:   http.StatusNotFound,
	store.ErrConflict:   http.StatusConflict,
	store.ErrState:      http.StatusConflict,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
