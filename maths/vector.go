package maths

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// VecFromSlice 长度为3的切片转换为向量
func VecFromSlice(v []float64) r3.Vec {
	if len(v) != 3 {
		panic("vector dimension mismatch")
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// VecToSlice 向量转换为新切片
func VecToSlice(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// VecIsFinite 检查向量分量是否为有限值
func VecIsFinite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Distance 两点欧氏距离
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// AddSlices 返回 a+b 的新切片（不修改输入）
func AddSlices(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)
	return out
}

// MaxAbs 获取绝对值最大的元素
func MaxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}
