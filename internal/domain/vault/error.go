package vault

import "errors"

var (
	// ErrNotFound покрывает и отсутствующую запись, и чужую
	ErrNotFound    = errors.New("item not found or user not authorized")
	ErrInvalidData = errors.New("title, username, and password are required")
	ErrEmptyUpdate = errors.New("no fields to update")
)
