package solver

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/timpalpant/efg/gamestate"
)

func TestNormalForm(t *testing.T) {
	g := mustParse(t, matchingPennies)
	matrix, err := NormalForm(g, gamestate.Player1, 100)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, -1}, {-1, 1}}, matrix)

	_, err = NormalForm(g, gamestate.Player1, 1)
	assert.Error(t, err)
}

func TestNormalFormNested(t *testing.T) {
	g := mustParse(t, safeOrRisky)
	matrix, err := NormalForm(g, gamestate.Player1, 100)
	require.NoError(t, err)
	// Defender: (safe, hold), (risky, hold), (safe, fold), (risky, fold).
	require.Len(t, matrix, 4)
	assert.Len(t, matrix[0], 3)
	assert.Equal(t, []float64{1, 1, 1}, matrix[0])
	assert.Equal(t, []float64{0, -2, 0}, matrix[1])
	assert.Equal(t, []float64{-1, -2, 0}, matrix[3])
}

func TestFictitiousPlayValue(t *testing.T) {
	g := mustParse(t, matchingPennies)
	rng := rand.New(rand.NewSource(123))
	v, err := FictitiousPlayValue(g, gamestate.Player1, 10000, rng)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v, 0.05)
}

func TestWriteYAML(t *testing.T) {
	g := mustParse(t, matchingPennies)
	opts := DefaultOptions()
	opts.Mode = Stackelberg
	s := New(g, opts)
	s.SetFixedResponse(FixedResponse{0: "h"})
	result, err := s.Solve(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, result.WriteYAML(&buf, g))

	var doc report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "stackelberg", doc.Mode)
	assert.Equal(t, gamestate.Player1.String(), doc.Player)
	assert.InDelta(t, 0.5, doc.Value, 1e-6)
	assert.Equal(t, []actionProbability{
		{Action: "h", Probability: 1},
		{Action: "t", Probability: 0},
	}, doc.Strategies[gamestate.Player2.String()][0])
}
