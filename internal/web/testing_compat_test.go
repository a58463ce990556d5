package web

import (
	"context"
	"testing"
)

// testContext mirrors testing.T.Context (Go 1.24+): it returns a context
// that is canceled just before the test's Cleanup functions run.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
