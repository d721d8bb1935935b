package maths

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestVectorHelpers(t *testing.T) {
	v := VecFromSlice([]float64{1, 2, 3})
	if s := VecToSlice(v); s[0] != 1 || s[1] != 2 || s[2] != 3 {
		t.Errorf("VecToSlice 错误: %v", s)
	}
	if d := Distance(r3.Vec{}, r3.Vec{X: 3, Y: 4}); math.Abs(d-5) > Epsilon {
		t.Errorf("希望距离为 5, 得到 %f", d)
	}
	a := []float64{1, 2, 3}
	sum := AddSlices(a, []float64{1, 1, 1})
	if a[0] != 1 || sum[0] != 2 || sum[2] != 4 {
		t.Errorf("AddSlices 不应修改输入: a=%v sum=%v", a, sum)
	}
	if MaxAbs([]float64{1, -5, 2}) != 5 {
		t.Errorf("MaxAbs 错误")
	}
	if VecIsFinite(r3.Vec{X: math.Inf(1)}) || !VecIsFinite(v) {
		t.Errorf("VecIsFinite 错误")
	}
}

func nan() float64 { return math.NaN() }
