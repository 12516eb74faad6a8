package content

import "errors"

var (
	// ErrConsumed is returned when a streamed chunk is produced twice.
	ErrConsumed = errors.New("streamed content already produced")

	// ErrSinkClosed is returned by a sink written to after its producer
	// returned.
	ErrSinkClosed = errors.New("content sink used after producer returned")
)
