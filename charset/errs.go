package charset

import "errors"

var (
	ErrUnknownEncoding    = errors.New("unknown encoding")
	ErrNotASCIICompatible = errors.New("encoding is not ascii compatible")
)
