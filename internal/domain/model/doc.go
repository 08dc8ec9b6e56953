// Package model contains the request and response shapes exchanged over the
// HTTP API. Storage rows live in the repository package and are mapped to
// these types explicitly.
package model
