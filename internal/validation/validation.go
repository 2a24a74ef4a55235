// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// string length or numeric ranges) expressed as validator tags,
// and reports every failed rule as a human-readable violation
// the client can act on.
package validation
