package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)

	ctx := WithRequestID(context.Background(), "abc-123")
	err := errors.New("boom")
	Time(ctx, "devices.List")(&err)

	out := buf.String()
	for _, want := range []string{"req_id=abc-123", "op=devices.List", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}
}

func TestTimeWithoutRequestID(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "route.compute")(&err)

	out := buf.String()
	if !strings.Contains(out, "req_id=- op=route.compute") {
		t.Fatalf("unexpected log line %q", out)
	}
	if strings.Contains(out, "err=") {
		t.Fatalf("successful op must not log an error: %q", out)
	}
}
