package main

import (
	"bytes"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marron-at-work/brex/compile"
	"github.com/marron-at-work/brex/parse"
)

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		cli     CLI
		wantErr bool
	}{
		{"literal source alone is fine", CLI{Literal: "x"}, false},
		{"stdin source alone is fine", CLI{Stdin: true}, false},
		{"file source alone is fine", CLI{Input: "f"}, false},
		{"no source is an error", CLI{}, true},
		{"two sources is an error", CLI{Stdin: true, Literal: "x"}, true},
		{"accept excludes line numbers", CLI{Literal: "x", Accept: true, LineNumbers: true}, true},
		{"accept excludes whole-line", CLI{Literal: "x", Accept: true, WholeLine: true}, true},
		{"count-only excludes line numbers", CLI{Literal: "x", CountOnly: true, LineNumbers: true}, true},
		{"watch with a file is fine", CLI{Input: "f", Watch: time.Second}, false},
		{"watch without a file is an error", CLI{Stdin: true, Watch: time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(&tt.cli)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestRunWatchReReadsUntilInterrupted exercises the xcmd-backed watch loop:
// it re-reads the input file on every tick until a SIGINT arrives, then
// returns the last completed iteration's exit code instead of an error.
func TestRunWatchReReadsUntilInterrupted(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "brex-watch-*.txt")
	require.NoError(t, err)
	_, err = f.WriteString("42\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	regex, diags := parse.ParseRegex(`/[0-9]+/`)
	require.Empty(t, diags)
	exec, cdiags := compile.Compile(regex)
	require.Empty(t, cdiags)

	cli := &CLI{Input: f.Name(), Accept: true, Watch: 20 * time.Millisecond}

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- runWatch(cli, exec, &stdout, &stderr)
	}()

	// let a few ticks land
	time.Sleep(100 * time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGINT))

	select {
	case code := <-done:
		assert.Equal(t, 0, code, "interrupting a clean watch loop exits 0")
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not stop after SIGINT")
	}

	assert.GreaterOrEqual(t, strings.Count(stdout.String(), "accept"), 1, "should have run at least once before interruption")
}
