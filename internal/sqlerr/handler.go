package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/vehicle-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MsgConstraintViolation is the AppError message for rows the database refused.
const MsgConstraintViolation = "Validation failed"

var (
	uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	checkConstraintRe  = regexp.MustCompile(`_([^_]+)_check$`)
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// Behavior:
//   - If err can be unwrapped into *sqlerr.Error, return its Code.
//   - If err can be unwrapped into *pgconn.PgError, map its SQLSTATE.
//   - Otherwise return sqlerr.Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// SQLSTATE + Severity are mapped into our enums for easier switching; the
// original SQLSTATE is kept in DatabaseCode.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// formatUserFriendlyMessage produces an end-user-facing error message.
//
// This message is intended for clients / UI, not for logs.
// column is the column the constraint is about, possibly inferred from the
// constraint name.
func formatUserFriendlyMessage(sqlErr *Error, column string) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
	fieldName := humanizeText(column)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		if fieldName == "" {
			fieldName = "identifier"
		}
		return fmt.Sprintf("A %s with this %s already exists", entityName, fieldName)

	case NotNullViolation:
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with "_id", use that base name. (Best for FK relations)
//     e.g. "fleet_id" -> "Fleet"
//  2. Otherwise use table name, singularized if it ends with "s".
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case (or lower-ish identifiers) into Title Case.
//
// Example:
//
//	"short_code" -> "Short Code"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// constraintColumn infers the column a constraint is about.
//
// The column reported by Postgres wins. Otherwise the Postgres default
// constraint names are parsed:
//
//	unique_<table>_<column>        -> column
//	<table>_<column>_key / _ukey   -> column
//	<table>_<column>_check         -> column
func constraintColumn(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := sqlErr.ConstraintName
	if name == "" {
		return ""
	}

	switch sqlErr.Code {
	case UniqueViolation:
		if strings.HasPrefix(name, "unique_") {
			parts := strings.Split(name, "_")
			if len(parts) >= 3 {
				return parts[len(parts)-1]
			}
		}
		if m := uniqueConstraintRe.FindStringSubmatch(name); len(m) > 1 {
			return m[1]
		}
	case CheckViolation:
		if m := checkConstraintRe.FindStringSubmatch(name); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// HandleError converts a low-level database error into an *errs.AppError.
//
// Output:
//   - If already *errs.AppError: returned unchanged
//   - unique violation: CONFLICT
//   - foreign key / not null / check violation: BAD_REQUEST with one violation
//   - pgx.ErrNoRows / sql.ErrNoRows: NOT_FOUND
//   - Otherwise: INTERNAL
//
// The original error is attached as the cause so it reaches the logs, never
// the client.
func HandleError(err error) *errs.AppError {
	if appErr, ok := errs.AsAppError(err); ok {
		return appErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		userMessage := formatUserFriendlyMessage(sqlErr, constraintColumn(sqlErr))

		switch sqlErr.Code {
		case UniqueViolation:
			return errs.NewConflictError(userMessage).WithCause(err)

		case ForeignKeyViolation, NotNullViolation, CheckViolation:
			return errs.NewBadRequestError(MsgConstraintViolation, []string{userMessage}).WithCause(err)

		default:
			// Unknown/other DB errors should not leak details to clients.
			return errs.NewInternalServerError().WithCause(err)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found").WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
