// Package testutil holds helpers shared by test packages.
package testutil

import (
	"os"
	"testing"
)

// SkipAITests gates tests that call real model providers behind the
// RUN_AI_TESTS environment variable; the rest of the suite stays
// offline.
func SkipAITests(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_AI_TESTS") == "" {
		t.Skip("skipping test that needs provider API keys; set RUN_AI_TESTS=1")
	}
}
