package donation

import (
	"Pasikuthu/domain"
	"context"
	"errors"
	"fmt"
	"net"
)

// classifyRemoteError separates errors reported by the store from failures to
// reach it at all.
func classifyRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.UnexpectedError{Op: op, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.UnexpectedError{Op: op, Cause: err}
	}
	return &domain.RemoteError{Op: op, Err: err}
}

func recoveredError(op string, r any) error {
	if err, ok := r.(error); ok {
		return &domain.UnexpectedError{Op: op, Cause: err}
	}
	return &domain.UnexpectedError{Op: op, Cause: fmt.Errorf("panic: %v", r)}
}
