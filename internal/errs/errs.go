// Package errs define custom error types and utilities.
//
// Its purpose is to create one structured error value (AppError)..
// that every layer returns, so the client receives meaningful,..
// actionable, and consistent error messages.
package errs
