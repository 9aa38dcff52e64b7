package vm

import "testing"

type fatalExit struct{}

// assertFatal runs fn with osExit rigged to panic instead of killing the
// test binary, and fails the test if fn never reaches a fatalf call.
func assertFatal(t *testing.T, fn func()) {
	t.Helper()

	old := osExit
	osExit = func(int) { panic(fatalExit{}) }
	defer func() { osExit = old }()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a fatal condition, got none")
		} else if _, ok := r.(fatalExit); !ok {
			panic(r)
		}
	}()

	fn()
}
