package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLogger_FollowsSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	logger := GetLogger("[test] ")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("hello")
	if got := buf.String(); !strings.Contains(got, "[test] ") || !strings.Contains(got, "hello") {
		t.Errorf("got log output %q, want prefix and message", got)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	logger := GetLogger("[file] ")
	fname := filepath.Join(t.TempDir(), "log")

	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("written")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written") {
		t.Errorf("log file contains %q, want message", data)
	}
}
