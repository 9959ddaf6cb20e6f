package session

import "errors"

// ErrInvalidCredential is returned by Login when the token or the user record
// is unusable. The wrapped message names the offending field.
var ErrInvalidCredential = errors.New("invalid credential")
