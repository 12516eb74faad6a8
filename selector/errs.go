package selector

import "errors"

var ErrExpr = errors.New("bad selector expression")
