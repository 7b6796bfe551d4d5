package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
	"github.com/marron-at-work/brex/xcmd"
	"github.com/stretchr/testify/require"
)

// digitAutomaton builds a one-state "[0-9]*" automaton by hand, without
// going through package compile, so this test only exercises Executor.
func digitAutomaton() *Automaton {
	digits := char.NewCharClass(false, []char.Range{{Low: '0', High: '9'}})
	return &Automaton{
		Start: 0,
		States: []State{
			{Edges: []Edge{{Class: digits, To: 0}}, Accept: true},
		},
	}
}

// TestExecutorConcurrentUse exercises one Executor from many goroutines
// at once via xcmd.ErrGroup, since every Executor field is written once
// at construction (NewExecutor) and never mutated afterward, so Test and
// TestRange are safe to call concurrently on a shared instance.
func TestExecutorConcurrentUse(t *testing.T) {
	exec := NewExecutor(digitAutomaton(), nil, nil, ast.AlphabetASCII)

	g, _ := xcmd.ErrGroup(context.Background())
	for i := 0; i < 64; i++ {
		i := i
		g.Go(func(ctx context.Context) error {
			haystack := fmt.Sprintf("%d", i)
			ok, kind := exec.Test(haystack)
			if kind != ErrNone {
				return fmt.Errorf("unexpected error kind %s for %q", kind, haystack)
			}
			if !ok {
				return fmt.Errorf("expected %q to match", haystack)
			}
			ok, kind = exec.TestRange("x"+haystack+"x", 1, len(haystack), false, false)
			if kind != ErrNone || !ok {
				return fmt.Errorf("expected TestRange to find %q, got ok=%v kind=%s", haystack, ok, kind)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
