package solver

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/lp"
)

func TestSolveMatchingPennies(t *testing.T) {
	g := mustParse(t, matchingPennies)
	result, err := New(g, DefaultOptions()).Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, lp.Optimal, result.Status)
	assert.InDelta(t, 0.0, result.Value, 1e-6)
	defender := result.Profile[gamestate.Player1][0]
	assert.InDelta(t, 0.5, defender[0], 1e-6)
	assert.InDelta(t, 0.5, defender[1], 1e-6)
	assert.NoError(t, result.Profile.Validate(g, 1e-4))
}

func TestSolveSymmetricAttack(t *testing.T) {
	g := mustParse(t, symmetricAttack)
	result, err := New(g, DefaultOptions()).Solve(context.Background())
	require.NoError(t, err)

	// Merged X leaves average to 3 against a and 1 against b, so the
	// defender mixes to make X and Y equally bad for the attacker.
	assert.InDelta(t, 15.0/7, result.Value, 1e-6)
	defender := result.Profile[gamestate.Player1][0]
	assert.InDelta(t, 4.0/7, defender[0], 1e-6)
	assert.InDelta(t, 3.0/7, defender[1], 1e-6)

	attacker := result.Profile[gamestate.Player2][0]
	assert.InDelta(t, attacker[0], attacker[1], 1e-12)
	assert.NoError(t, result.Profile.Validate(g, 1e-4))
}

func TestSolveAsAttacker(t *testing.T) {
	g := mustParse(t, matchingPennies)
	opts := DefaultOptions()
	opts.Player = gamestate.Player2
	result, err := New(g, opts).Solve(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.Value, 1e-6)
	attacker := result.Profile[gamestate.Player2][0]
	assert.InDelta(t, 0.5, attacker[0], 1e-6)
	assert.NoError(t, result.Profile.Validate(g, 1e-4))
}

func TestSolveNestedAttacker(t *testing.T) {
	g := mustParse(t, twoLevelAttack)
	result, err := New(g, DefaultOptions()).Solve(context.Background())
	require.NoError(t, err)

	// Lv and R bind at q = 3/5. R alone would promise 2 by leaving the
	// defender on a, but the attacker then answers with Lv.
	assert.InDelta(t, 1.6, result.Value, 1e-6)
	defender := result.Profile[gamestate.Player1][0]
	assert.InDelta(t, 0.6, defender[0], 1e-6)
	assert.InDelta(t, 0.4, defender[1], 1e-6)
	assert.NoError(t, result.Profile.Validate(g, 1e-4))

	_, brValue, err := g.BestResponse(gamestate.Player2, result.Profile)
	require.NoError(t, err)
	assert.InDelta(t, -result.Value, brValue, 1e-6)
}

func TestEvaluate(t *testing.T) {
	g := mustParse(t, twoLevelAttack)
	result, err := New(g, DefaultOptions()).Solve(context.Background())
	require.NoError(t, err)

	eval, err := Evaluate(g, gamestate.Player1, result.Profile)
	require.NoError(t, err)
	assert.InDelta(t, 1.6, eval.Value, 1e-6)
	assert.InDelta(t, -1.6, eval.BestResponseValue, 1e-6)
}

func TestEvaluateUnaveragedLeaves(t *testing.T) {
	g := mustParse(t, symmetricAttack)
	profile := efg.NewProfile()
	profile[gamestate.Player1][0] = []float64{1, 0}
	profile[gamestate.Player2][0] = []float64{1, 0, 0}

	// The program sees X against a as worth 3, but the first X leaf
	// alone is worth 2. Against a the attacker's best reply is Y.
	eval, err := Evaluate(g, gamestate.Player1, profile)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, eval.Value, 1e-9)
	assert.InDelta(t, 0.0, eval.BestResponseValue, 1e-9)
}

func TestZeroMassDefault(t *testing.T) {
	g := mustParse(t, safeOrRisky)
	s := New(g, DefaultOptions())

	first, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, first.Value, 1e-6)
	assert.Equal(t, []float64{1, 0}, first.Profile[gamestate.Player1][0])
	assert.Equal(t, []float64{1, 0}, first.Profile[gamestate.Player1][1])

	second, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Profile, second.Profile)
}

func TestExtractIdempotent(t *testing.T) {
	g := mustParse(t, symmetricAttack)
	result, err := New(g, DefaultOptions()).Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, result.Profile, result.Extract(g))
	assert.Equal(t, result.Extract(g), result.Extract(g))
}

func TestSolveRestrictedGame(t *testing.T) {
	g := mustParse(t, safeOrRisky)
	s := New(g, DefaultOptions())

	br := NewBestResponse()
	br.Add(gamestate.Player1, 0, "safe")
	assert.Equal(t, 1, s.UpdateRestrictedGame(br))

	result, err := s.SolveRestrictedGame(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Value, 1e-6)

	// The attacker is never reached, so it splits evenly among the
	// actions named like its first one.
	assert.Equal(t, []float64{0.5, 0, 0.5}, result.Profile[gamestate.Player2][0])
	assert.Equal(t, []float64{1, 0}, result.Profile[gamestate.Player1][0])
	assert.NoError(t, result.Profile.Validate(g, 1e-4))
}

func TestDoubleOracle(t *testing.T) {
	g := mustParse(t, matchingPennies)
	result, history, err := RunDoubleOracle(context.Background(), g, DefaultOptions(), 10)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.Value, 1e-6)
	defender := result.Profile[gamestate.Player1][0]
	assert.InDelta(t, 0.5, defender[0], 1e-6)
	require.NotEmpty(t, history)
	assert.Equal(t, 0, history[len(history)-1].Added)
	assert.Greater(t, len(history), 1)
}

func TestDoubleOracleMaxIterations(t *testing.T) {
	g := mustParse(t, matchingPennies)
	_, history, err := RunDoubleOracle(context.Background(), g, DefaultOptions(), 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

type failingModel struct {
	*lp.SimplexModel
}

func (m failingModel) Solve(ctx context.Context) error {
	return &lp.UnsolvableModelError{Status: lp.Failed}
}

func TestSolveUnsolvable(t *testing.T) {
	g := mustParse(t, matchingPennies)
	opts := DefaultOptions()
	opts.NewModel = func(o lp.Options) lp.Model {
		return failingModel{lp.NewSimplex(o)}
	}

	result, err := New(g, opts).Solve(context.Background())
	assert.Nil(t, result)
	var unsolvable *lp.UnsolvableModelError
	assert.True(t, errors.As(err, &unsolvable), "got %v", err)
}

func TestSolveTimeout(t *testing.T) {
	g := mustParse(t, matchingPennies)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(g, DefaultOptions()).Solve(ctx)
	var timeout *lp.EngineTimeoutError
	assert.True(t, errors.As(err, &timeout), "got %v", err)
}

func TestModelOutput(t *testing.T) {
	g := mustParse(t, matchingPennies)
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ModelOutput = &buf

	_, err := New(g, opts).Solve(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Maximize")
	assert.Contains(t, buf.String(), "br_is0_1")
	assert.Contains(t, buf.String(), "Generals")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Stackelberg")
	require.NoError(t, err)
	assert.Equal(t, Stackelberg, m)

	_, err = ParseMode("cooperative")
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%+v", err), "solver.ParseMode")
}
