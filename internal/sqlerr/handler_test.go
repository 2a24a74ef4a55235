package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/vehicle-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, QueryCanceled, MapCode("57014"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestHandleErrorUniqueShortcode(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "vehicles_shortcode_key"`,
		TableName:      "vehicles",
		ConstraintName: "vehicles_shortcode_key",
	}

	appErr := HandleError(fmt.Errorf("insert vehicle: %w", pgErr))

	assert.Equal(t, errs.ErrorCodeConflict, appErr.Code)
	assert.Equal(t, "A Vehicle with this Shortcode already exists", appErr.Message)
	assert.ErrorIs(t, appErr, pgErr)
}

func TestHandleErrorCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		TableName:      "vehicles",
		ConstraintName: "vehicles_battery_check",
	}

	appErr := HandleError(pgErr)

	assert.Equal(t, errs.ErrorCodeBadRequest, appErr.Code)
	assert.Equal(t, MsgConstraintViolation, appErr.Message)
	assert.Equal(t, []string{"The Battery value does not meet required conditions"}, appErr.Violations())
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	appErr := HandleError(&pgconn.PgError{Code: "23502", TableName: "vehicles", ColumnName: "shortcode"})

	assert.Equal(t, errs.ErrorCodeBadRequest, appErr.Code)
	assert.Equal(t, []string{"The Shortcode is required"}, appErr.Violations())
}

func TestHandleErrorNoRows(t *testing.T) {
	appErr := HandleError(pgx.ErrNoRows)

	assert.Equal(t, errs.ErrorCodeNotFound, appErr.Code)
}

func TestHandleErrorUnknown(t *testing.T) {
	for _, err := range []error{
		errors.New("dial tcp: connection refused"),
		context.DeadlineExceeded,
		&pgconn.PgError{Code: "42P01", Message: `relation "vehicles" does not exist`},
	} {
		appErr := HandleError(err)
		assert.Equal(t, errs.ErrorCodeInternal, appErr.Code)
		assert.Equal(t, "Internal Server Error", appErr.Message)
		assert.ErrorIs(t, appErr, err)
	}
}

func TestHandleErrorKeepsAppError(t *testing.T) {
	notFound := errs.NewNotFoundError("Vehicle not found")

	assert.Same(t, notFound, HandleError(notFound))
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"})))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestConstraintColumn(t *testing.T) {
	assert.Equal(t, "shortcode", constraintColumn(&Error{Code: UniqueViolation, ConstraintName: "unique_vehicles_shortcode"}))
	assert.Equal(t, "shortcode", constraintColumn(&Error{Code: UniqueViolation, ConstraintName: "vehicles_shortcode_key"}))
	assert.Equal(t, "latitude", constraintColumn(&Error{Code: CheckViolation, ConstraintName: "vehicles_latitude_check"}))
	assert.Equal(t, "battery", constraintColumn(&Error{Code: CheckViolation, ColumnName: "battery"}))
	assert.Equal(t, "", constraintColumn(&Error{Code: Other, ConstraintName: "vehicles_pkey"}))
}
