package liteapi

import (
	"context"
	"errors"
	"fmt"
)

// RemoteFetchError is a failed backend call: which operation, the HTTP
// status when one was received, and the most specific message the
// response body offered.
type RemoteFetchError struct {
	Op      string // "place", "hotels", "rates", "map token"
	Status  int    // 0 when no response was received
	Message string
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.Op, e.Message)
}

// IsCancelled reports whether err is a cooperative cancellation rather
// than a genuine fetch failure. Callers swallow these silently.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
