// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request correlation, request logging, CORS,
// tracing, panic recovery and error rendering
package middleware
