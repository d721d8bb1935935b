package control

import (
	"fmt"
	"math"

	"reacher/ik"
	"reacher/maths"
	"reacher/types"

	"gonum.org/v1/gonum/spatial/r3"
)

// WrapAngles 将关节角映射到 (-π, π], 返回新切片
func WrapAngles(angles []float64) []float64 {
	out := make([]float64, len(angles))
	for i, a := range angles {
		out[i] = math.Atan2(math.Sin(a), math.Cos(a))
	}
	return out
}

// Verifier 下发到执行器之前复核逆解
type Verifier struct {
	Chain     ik.Chain
	Threshold float64   // 足端与目标允许的最大距离 (米)
	Fallback  []float64 // 复核失败时使用的安全关节角, 为空时使用零位
}

// NewVerifier 使用默认阈值创建
func NewVerifier(chain ik.Chain) *Verifier {
	return &Verifier{Chain: chain, Threshold: types.VerifyThreshold}
}

// Check 重新计算足端位置并与目标比较
// 超出阈值时返回包装后的 ErrUnverifiedSolution
func (v *Verifier) Check(target r3.Vec, angles []float64) (float64, error) {
	foot, err := v.Chain.FootPosition(angles)
	if err != nil {
		return 0, err
	}
	dist := maths.Distance(foot, target)
	if !(dist <= v.Threshold) {
		return dist, fmt.Errorf("%w: 距离 %.4f m 超过阈值 %.4f m", types.ErrUnverifiedSolution, dist, v.Threshold)
	}
	return dist, nil
}

// Safe 复核通过返回 angles, 否则返回安全关节角副本
func (v *Verifier) Safe(target r3.Vec, angles []float64) ([]float64, error) {
	if _, err := v.Check(target, angles); err != nil {
		return v.fallback(), err
	}
	return angles, nil
}

func (v *Verifier) fallback() []float64 {
	if len(v.Fallback) == types.JointCount {
		return append([]float64(nil), v.Fallback...)
	}
	return make([]float64, types.JointCount)
}
