package internal

import "errors"

// Store errors shared between the game core and the storage layer. The
// storage implementation wraps driver errors with these sentinels so callers
// can branch with errors.Is.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("duplicate user")
	ErrDuplicateWord    = errors.New("duplicate word")
	ErrStoreUnavailable = errors.New("store unavailable")
)
