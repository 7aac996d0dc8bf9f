package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/termconsole/internal/logging"
)

// RunWithTempLog runs the package's tests with the log file pointed at a
// temporary directory, so failures logged by the code under test do not land
// in the source tree.
func RunWithTempLog(m *testing.M) int {
	dir, err := os.MkdirTemp("", "termconsole-test")
	if err != nil {
		return m.Run()
	}
	defer os.RemoveAll(dir)
	logging.Configure(filepath.Join(dir, "test.log"))
	defer logging.Configure("")
	return m.Run()
}
