package preflight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAllNoFailures(t *testing.T) {
	checks := []Check{
		{Name: "amount positive", Run: func() error { return nil }},
		{Name: "graph readable", Kind: KindInput, Run: func() error { return nil }},
	}

	failures := RunAll(checks)
	require.Empty(t, failures)
	require.Equal(t, 0, ExitCode(failures))
}

func TestExitCodePrefersInputFailure(t *testing.T) {
	checks := []Check{
		{Name: "bad config", Kind: KindConfig, Run: func() error { return errors.New("pairs must be positive") }},
		{Name: "bad input", Kind: KindInput, Run: func() error { return errors.New("no such file") }},
	}

	failures := RunAll(checks)
	require.Len(t, failures, 2)
	require.Equal(t, 3, ExitCode(failures))
}

func TestExitCodeConfigOnly(t *testing.T) {
	checks := []Check{
		{Name: "bad config", Kind: KindConfig, Run: func() error { return errors.New("amount must be positive") }},
	}

	failures := RunAll(checks)
	require.Equal(t, 2, ExitCode(failures))
}
