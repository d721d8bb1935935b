package ik

import (
	"context"
	"errors"
	"testing"

	"reacher/maths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSolveAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, leg := newTestSolver(t, DefaultOptions())
	seeds := [][]float64{{0.1, 0.2, 0.8}, {-0.1, 0, 1.0}, {0.2, -0.1, 0.8}, {0, 0.3, 1.1}}
	targets := make([]r3.Vec, len(seeds))
	for i, q := range seeds {
		p, err := leg.FootPosition(q)
		require.NoError(t, err)
		targets[i] = p
	}
	guess := []float64{0.05, 0.1, 0.9}
	results, err := s.SolveAll(context.Background(), targets, guess)
	require.NoError(t, err)
	require.Len(t, results, len(targets))

	for i, res := range results {
		assert.Equal(t, targets[i], res.Target, "结果顺序应与目标一致")
		single, err := s.SolveResult(targets[i], guess)
		require.NoError(t, err)
		assert.Equal(t, single.Angles, res.Angles, "并发求解应与单独求解一致")
		foot, _ := leg.FootPosition(res.Angles)
		assert.Less(t, maths.Distance(foot, targets[i]), 0.05)
	}
	assert.Equal(t, []float64{0.05, 0.1, 0.9}, guess)
}

func TestSolveAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSolver(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.SolveAll(ctx, []r3.Vec{{X: 0.1}, {Y: 0.1}}, []float64{0, 0, 0})
	assert.True(t, errors.Is(err, context.Canceled), "得到 %v", err)

	results, err := s.SolveAll(context.Background(), nil, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSolveAllInvalidGuess(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSolver(t, DefaultOptions())
	_, err := s.SolveAll(context.Background(), []r3.Vec{{X: 0.1}}, []float64{0})
	assert.Error(t, err)
}
