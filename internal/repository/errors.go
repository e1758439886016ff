package repository

import "errors"

// Sentinel errors returned by repositories. ErrCardNotFound and ErrNotOwner
// are deliberately distinct: an API layer may mask "not yours" as "not
// found" for privacy, but the repositories never conflate them.
var (
	ErrCardNotFound  = errors.New("card not found")
	ErrNotOwner      = errors.New("card belongs to another user")
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)
