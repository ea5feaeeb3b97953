// Package datasource abstracts where raw extract bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source provides a readable stream of raw input data.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
