package executor

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	out, err := New().Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteIncludesStderr(t *testing.T) {
	_, err := New().Execute(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should contain stderr", err)
	}
}

func TestExecuteInDir(t *testing.T) {
	dir := t.TempDir()
	out, err := New().ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}

	want, _ := os.Getwd()
	if strings.TrimSpace(out) == want {
		t.Errorf("ExecuteInDir() ran in the current directory")
	}
}

func TestStream(t *testing.T) {
	p, err := New().Stream(context.Background(), "sh", "-c", "printf abc")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	data, err := io.ReadAll(p.Stdout())
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("stdout = %q, want %q", data, "abc")
	}
}

func TestStreamMissingBinary(t *testing.T) {
	if _, err := New().Stream(context.Background(), "definitely-not-a-binary-xyz"); err == nil {
		t.Error("Stream() should fail for a missing binary")
	}
}

func TestFirstAvailable(t *testing.T) {
	got, err := FirstAvailable(context.Background(), New(), "-version", "definitely-not-a-binary-xyz", "true")
	if err != nil {
		t.Fatalf("FirstAvailable() error = %v", err)
	}
	if got != "true" {
		t.Errorf("FirstAvailable() = %q, want true", got)
	}

	_, err = FirstAvailable(context.Background(), New(), "-version", "nope-1-xyz", "nope-2-xyz")
	if err == nil || !strings.Contains(err.Error(), "nope-1-xyz") || !strings.Contains(err.Error(), "nope-2-xyz") {
		t.Errorf("FirstAvailable() error = %v, want both candidates reported", err)
	}
}
