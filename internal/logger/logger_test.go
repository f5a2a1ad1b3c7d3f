package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"
)

// capture enables verbose output into a buffer for the test's duration.
func capture(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(on)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Fatal("verbose should start disabled")
	}
	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("SetVerbose(true) did not enable verbose")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("config: %s", "/tmp/config.toml") }, "[DEBUG] config: /tmp/config.toml\n"},
		{"info", func() { Info("%d lists", 2) }, "[INFO] 2 lists\n"},
		{"warn", func() { Warn("activity log unavailable") }, "[WARN] activity log unavailable\n"},
		{"section", func() { Section("Process") }, "\n=== Process ===\n"},
		{"request", func() { Request("POST", "/chatbot", 200, 1500*time.Microsecond) }, "[HTTP] POST /chatbot -> 200 (2ms)\n"},
		{"request failed", func() { Request("GET", "/view-all-products", 0, 3*time.Second) }, "[HTTP] GET /view-all-products failed after 3s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSilentUnlessVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("a")
	Info("b")
	Warn("c")
	Section("d")
	Request("POST", "/chatbot", 500, time.Second)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, true)
	SetOutput(&lockedBuffer{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			SetVerbose(n%2 == 0)
		}(i)
		go func(n int) {
			defer wg.Done()
			Debug("message %d", n)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}

// lockedBuffer tolerates the concurrent writes in TestConcurrentAccess.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}
