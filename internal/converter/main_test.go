package converter

import (
	"testing"

	"go.uber.org/goleak"
)

// The pipeline opens files and workbooks; none of it may leave goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
