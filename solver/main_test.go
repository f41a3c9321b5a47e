package solver

import (
	"testing"

	"go.uber.org/goleak"
)

// Worker goroutines must all be joined before Solve returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
