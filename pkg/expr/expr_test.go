package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/expr"
	"github.com/dmitrymomot/flagkit/pkg/flag"
)

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"country ==",
		"== 1",
		"(a == 1",
		"a === 1",
		"a = 1",
		"a && ",
		"a ## b",
		`"unterminated`,
		"a == 1 b",
	}
	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			_, err := expr.Compile(src)
			require.ErrorIs(t, err, expr.ErrParse)
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	attrs := map[string]any{
		"country":  "US",
		"seats":    10,
		"ratio":    0.25,
		"beta":     true,
		"internal": false,
		"user_key": "u42",
	}

	cases := []struct {
		src      string
		expected bool
	}{
		{`country == "US"`, true},
		{`country == "FR"`, false},
		{`country != "FR"`, true},
		{`seats >= 10`, true},
		{`seats > 10`, false},
		{`seats < 11`, true},
		{`seats <= 9`, false},
		{`ratio < 0.5`, true},
		{`seats == 10.0`, true}, // numeric kinds unify
		{`beta`, true},
		{`!beta`, false},
		{`internal`, false},
		{`beta && country == "US"`, true},
		{`beta && internal`, false},
		{`internal || beta`, true},
		{`internal || internal`, false},
		{`!(beta && internal)`, true},
		{`beta && seats > 5 || internal`, true},
		{`country > "T"`, true}, // strings compare lexicographically
		{`user_key == "u42"`, true},
		{`true`, true},
		{`false`, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			program, err := expr.Compile(tc.src)
			require.NoError(t, err)
			got, err := program.Evaluate(attrs)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()

	attrs := map[string]any{
		"country": "US",
		"seats":   10,
		"beta":    true,
		"gone":    nil,
	}

	cases := []struct {
		src      string
		expected error
	}{
		{`plan == "pro"`, expr.ErrUnknownAttribute},
		{`country > 5`, expr.ErrTypeMismatch},
		{`seats == "10"`, expr.ErrTypeMismatch},
		{`beta < true`, expr.ErrTypeMismatch},
		{`!country`, expr.ErrTypeMismatch},
		{`country && beta`, expr.ErrTypeMismatch},
		{`gone == 1`, expr.ErrTypeMismatch},
		{`country`, expr.ErrNotBoolean},
		{`seats`, expr.ErrNotBoolean},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			program, err := expr.Compile(tc.src)
			require.NoError(t, err)
			_, err = program.Evaluate(attrs)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestEvaluateShortCircuit(t *testing.T) {
	t.Parallel()

	// The right operand references a missing attribute; short-circuiting must
	// keep it from being evaluated at all.
	attrs := map[string]any{"beta": true, "internal": false}

	program, err := expr.Compile(`beta || missing == 1`)
	require.NoError(t, err)
	got, err := program.Evaluate(attrs)
	require.NoError(t, err)
	assert.True(t, got)

	program, err = expr.Compile(`internal && missing == 1`)
	require.NoError(t, err)
	got, err = program.Evaluate(attrs)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestProgramSource(t *testing.T) {
	t.Parallel()

	program, err := expr.Compile(`country == "US"`)
	require.NoError(t, err)
	assert.Equal(t, `country == "US"`, program.Source())
}

func TestProgramRun(t *testing.T) {
	t.Parallel()

	program, err := expr.Compile(`seats`)
	require.NoError(t, err)
	got, err := program.Run(map[string]any{"seats": 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestCompilerContract(t *testing.T) {
	t.Parallel()

	var compiler flag.Compiler = expr.NewCompiler()

	predicate, err := compiler.Compile(`country == "US"`)
	require.NoError(t, err)

	ok, err := predicate.Evaluate(map[string]any{"country": "US"})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = compiler.Compile(`country ==`)
	require.ErrorIs(t, err, expr.ErrParse)
}

func TestProgramConcurrentEvaluate(t *testing.T) {
	t.Parallel()

	program, err := expr.Compile(`seats > 5 && country == "US"`)
	require.NoError(t, err)

	done := make(chan struct{})
	for _i := 0; _i < 8; _i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				ok, err := program.Evaluate(map[string]any{"seats": i, "country": "US"})
				if err != nil || ok != (i > 5) {
					t.Errorf("concurrent evaluation diverged at %d", i)
					return
				}
			}
		}()
	}
	for _i := 0; _i < 8; _i++ {
		<-done
	}
}
