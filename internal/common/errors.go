package common

import "errors"

var ErrNotLoggedIn = errors.New("not logged in")
