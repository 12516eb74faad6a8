package rules

import "errors"

var ErrRule = errors.New("invalid rule")
