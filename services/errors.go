package services

import "errors"

var (
	// ErrUpstreamStatus is returned when the data source answers with a non-200 status
	ErrUpstreamStatus = errors.New("upstream returned an error status")

	// ErrInvalidSeason is returned for seasons outside the supported range
	ErrInvalidSeason = errors.New("invalid season")

	// ErrInvalidCredentials is returned when an admin key or token is rejected
	ErrInvalidCredentials = errors.New("invalid credentials")
)
