// Package controller contains the business logic.
//
// It sits between the handler and repository layers.
// It receives raw request data from the handler, parses and
// validates it, calls the store to persist data, and returns
// either a response envelope or an *errs.AppError. No other
// error type leaves this package.
package controller
