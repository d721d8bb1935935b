// Package ik 使用牛顿-拉弗森 (Newton-Raphson) 迭代求解三自由度腿的逆运动学.
//
// 每次迭代用有限差分估计雅可比矩阵, 经奇异值分解伪逆得到关节角修正量.
// 迭代在代价变化小于容差或达到最大迭代次数时结束, 两种情况都返回当前解;
// 求解器不判断解是否可用, 调用方需自行复核足端误差.
package ik

import (
	"fmt"
	"math"

	"reacher/maths"
	"reacher/types"

	"gonum.org/v1/gonum/spatial/r3"
)

// Chain 求解器依赖的正运动学
type Chain interface {
	FootPosition(angles []float64) (r3.Vec, error)
}

// Solver 逆运动学求解器
// 无内部可变状态, 可并发调用
type Solver struct {
	chain Chain
	opts  Options
}

// NewSolver 创建求解器
func NewSolver(chain Chain, opts Options) (*Solver, error) {
	if chain == nil {
		return nil, fmt.Errorf("%w: chain 为空", types.ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Solver{chain: chain, opts: opts}, nil
}

// Options 返回参数副本
func (s *Solver) Options() Options { return s.opts }

// Cost 目标位置与 guess 对应足端位置的欧氏距离
func (s *Solver) Cost(target r3.Vec, guess []float64) (float64, error) {
	foot, err := s.chain.FootPosition(guess)
	if err != nil {
		return 0, err
	}
	return maths.Distance(target, foot), nil
}

// Jacobian 前向差分估计足端位置对关节角的雅可比矩阵
// 基准位置只计算一次, 共 4 次正运动学
func (s *Solver) Jacobian(guess []float64, perturbation float64) (maths.Matrix3, error) {
	if perturbation == 0 || !finite(perturbation) {
		return maths.Matrix3{}, fmt.Errorf("%w: perturbation=%v", types.ErrInvalidInput, perturbation)
	}
	base, err := s.chain.FootPosition(guess)
	if err != nil {
		return maths.Matrix3{}, err
	}
	var jac maths.Matrix3
	perturbed := make([]float64, len(guess))
	for i := 0; i < types.JointCount; i++ {
		copy(perturbed, guess)
		perturbed[i] += perturbation
		pos, err := s.chain.FootPosition(perturbed)
		if err != nil {
			return maths.Matrix3{}, err
		}
		jac = jac.SetCol(i, r3.Scale(1/perturbation, r3.Sub(pos, base)))
	}
	return jac, nil
}

// Solve 迭代求解, 只返回关节角
func (s *Solver) Solve(target r3.Vec, guess []float64) ([]float64, error) {
	res, err := s.SolveResult(target, guess)
	if err != nil {
		return nil, err
	}
	return res.Angles, nil
}

// SolveResult 迭代求解并返回终止状态与迭代记录
// guess 不会被修改
func (s *Solver) SolveResult(target r3.Vec, guess []float64) (Result, error) {
	if err := types.CheckAngles(guess); err != nil {
		return Result{}, err
	}
	if !maths.VecIsFinite(target) {
		return Result{}, fmt.Errorf("%w: 目标位置非有限值 %v", types.ErrInvalidInput, target)
	}
	res := Result{
		Target:  target,
		Initial: append([]float64(nil), guess...),
		Status:  BudgetExhausted,
		History: make([]Step, 0, s.opts.MaxIterations),
	}
	current := res.Initial
	previousCost := math.Inf(1)
	for iter := 0; iter < s.opts.MaxIterations; iter++ {
		jac, err := s.Jacobian(current, s.opts.Perturbation)
		if err != nil {
			return Result{}, err
		}
		foot, err := s.chain.FootPosition(current)
		if err != nil {
			return Result{}, err
		}
		residual := r3.Sub(target, foot)
		pinv, err := maths.Pinv(jac, s.opts.RCond)
		if err != nil {
			return Result{}, fmt.Errorf("迭代 %d 伪逆失败: %w", iter, err)
		}
		// 完整牛顿步, 不做线搜索或步长限制
		delta := pinv.MulSlice(maths.VecToSlice(residual))
		current = maths.AddSlices(current, delta)
		cost, err := s.Cost(target, current)
		if err != nil {
			return Result{}, err
		}
		res.History = append(res.History, Step{
			Iteration: iter,
			Angles:    current,
			Delta:     delta,
			Residual:  residual,
			Cost:      cost,
		})
		res.Iterations = iter + 1
		res.Angles, res.Cost = current, cost
		if math.Abs(previousCost-cost) < s.opts.Tolerance {
			res.Status = Converged
			break
		}
		if s.opts.DetectDivergence && s.diverging(previousCost, cost, current) {
			res.Status = Diverged
			break
		}
		previousCost = cost
	}
	return res, nil
}

func (s *Solver) diverging(previousCost, cost float64, angles []float64) bool {
	if cost > previousCost {
		return true
	}
	return s.opts.MaxAngle > 0 && maths.MaxAbs(angles) > s.opts.MaxAngle
}
