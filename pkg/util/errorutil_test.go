package util_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

func TestToDomainError_NoRowsVariants(t *testing.T) {
	// pgx.ErrNoRows and sql.ErrNoRows are distinct sentinels; both must
	// map to the not-found code rather than falling through to 500.
	for _, sentinel := range []error{pgx.ErrNoRows, sql.ErrNoRows} {
		de := apperrors.ToDomainError(fmt.Errorf("load user: %w", sentinel))
		require.NotNil(t, de)
		assert.Equal(t, "NOT_FOUND", de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	}
}

func TestToDomainError_DeadlineExceeded(t *testing.T) {
	de := apperrors.ToDomainError(context.DeadlineExceeded)
	require.NotNil(t, de)
	assert.Equal(t, "UNAVAILABLE", de.Code)
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
}

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	orig := apperrors.NewConflict("shop application already exists", nil)
	de := apperrors.ToDomainError(orig)
	require.NotNil(t, de)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestToDomainError_UnknownErrorIsInternal(t *testing.T) {
	de := apperrors.ToDomainError(errors.New("disk on fire"))
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}
