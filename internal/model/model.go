// Package model holds the domain values shared by every layer.
//
// Values here carry no behavior beyond construction: they are created by the
// store (trusted rows) or from requests that already passed validation, and
// are never mutated afterwards.
package model
