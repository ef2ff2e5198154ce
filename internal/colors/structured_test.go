package colors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	EnableStructuredLogging()
	defer EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)

	out := capture(t, &os.Stderr, func() {
		StructuredDebug("forum", "fetch", "started", nil, "", nil)
	})
	assert.Empty(t, out)

	SetDebug(true)
	out = capture(t, &os.Stderr, func() {
		StructuredError("forum", "fetch", "failed", errors.New("boom"), "/Discussion/MyMail", map[string]any{"status": 500})
	})
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"component":"forum"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"status":500`)
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	out := capture(t, &os.Stderr, func() {
		StructuredInfo("tui", "start", "skipped", nil, "", nil)
	})
	assert.Empty(t, out)
}
