package model

import "errors"

// ErrValidation marks a business-rule failure raised by an aggregate guard.
// Services translate it into their own error taxonomy; it never reaches the
// transport layer raw.
var ErrValidation = errors.New("validation failed")
