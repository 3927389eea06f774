package workerloop

import (
	"errors"
	"fmt"
)

// ErrWorkerPanicked wraps a recovered panic value from a plugin worker loop.
var ErrWorkerPanicked = errors.New("workerloop: panic recovered")

func panicError(name string, recovered any) error {
	return fmt.Errorf("%w: plugin %q: %v", ErrWorkerPanicked, name, recovered)
}
