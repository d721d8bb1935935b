package ik

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// SolveAll 并发求解多个互不相关的目标, 结果顺序与 targets 一致
// 每个目标都从同一个 guess 出发; ctx 取消后尚未开始的目标不再求解
func (s *Solver) SolveAll(ctx context.Context, targets []r3.Vec, guess []float64) ([]Result, error) {
	results := make([]Result, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.SolveResult(target, guess)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
