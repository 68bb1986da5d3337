package services

import "errors"

// Sentinel errors returned by the services. Callers should use errors.Is
// to match these values; anything else is an unexpected backend fault.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSearchQueryRequired = errors.New("search query required")
)
