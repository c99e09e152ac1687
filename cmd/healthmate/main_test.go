package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	configPath = filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	logFile = filepath.Join(t.TempDir(), "healthmate.log")
	quiet = true
	t.Cleanup(func() {
		configPath, logFile, quiet = "", "", false
	})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestListCmd(t *testing.T) {
	cmd, out := testCmd(t)
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"1. Joint Pain (joint-pain)", "2. Diabetes (diabetes)", "3. Low Energy (low-energy)"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestSearchCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"blood", "sugar"}, "healthmate show diabetes"},
		{[]string{"JOINT"}, "healthmate show joint-pain"},
		{[]string{"migraine"}, "joint pain, diabetes, or low energy"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, out := testCmd(t)
			if err := runSearch(cmd, tt.args); err != nil {
				t.Fatalf("runSearch failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("search output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestSetupRejectsBadContent(t *testing.T) {
	testCmd(t)
	contentPath = filepath.Join(t.TempDir(), "nope.yaml")
	defer func() { contentPath = "" }()

	if _, err := setup(); err == nil {
		t.Fatal("expected error for missing content file")
	}
}

func TestSetupRejectsMissingConfig(t *testing.T) {
	testCmd(t)
	configPath = filepath.Join(t.TempDir(), "missing.toml")

	if _, err := setup(); err == nil {
		t.Fatal("expected error for an explicit config path that does not exist")
	}
}
