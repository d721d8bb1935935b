package ik

import (
	"fmt"
	"math"

	"reacher/types"
)

// Options 求解器参数
type Options struct {
	Perturbation  float64 `yaml:"perturbation"`   // 有限差分扰动 (弧度)
	Tolerance     float64 `yaml:"tolerance"`      // 代价变化小于该值时停止 (米)
	MaxIterations int     `yaml:"max_iterations"` // 最大迭代次数
	RCond         float64 `yaml:"rcond"`          // 伪逆奇异值相对截断

	// 发散检测默认关闭, 关闭时行为与无检测的迭代完全一致
	DetectDivergence bool    `yaml:"detect_divergence"`
	MaxAngle         float64 `yaml:"max_angle"` // 关节角绝对值上限, 0 表示不检查
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Perturbation:  types.Perturbation,
		Tolerance:     types.Tolerance,
		MaxIterations: types.MaxIterations,
		RCond:         types.SingularCutoff,
	}
}

// Validate 校验参数
func (o Options) Validate() error {
	switch {
	case o.Perturbation == 0 || !finite(o.Perturbation):
		return fmt.Errorf("%w: perturbation=%v", types.ErrInvalidInput, o.Perturbation)
	case o.Tolerance < 0 || !finite(o.Tolerance):
		return fmt.Errorf("%w: tolerance=%v", types.ErrInvalidInput, o.Tolerance)
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations=%d", types.ErrInvalidInput, o.MaxIterations)
	case o.RCond < 0 || o.RCond >= 1 || !finite(o.RCond):
		return fmt.Errorf("%w: rcond=%v", types.ErrInvalidInput, o.RCond)
	case o.MaxAngle < 0 || !finite(o.MaxAngle):
		return fmt.Errorf("%w: max_angle=%v", types.ErrInvalidInput, o.MaxAngle)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
