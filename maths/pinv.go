package maths

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Pinv 基于奇异值分解计算 Moore-Penrose 伪逆
//
//	m: 输入矩阵（可奇异）
//	rcond: 相对截断, 奇异值 <= rcond*σmax 时视为零
//	返回: 伪逆 V·Σ⁺·Uᵀ
//
// 全零矩阵的伪逆为全零矩阵.
func Pinv(m Matrix3, rcond float64) (Matrix3, error) {
	if !m.IsFinite() {
		return Matrix3{}, errors.New("pinv: 矩阵包含非有限值")
	}
	var svd mat.SVD
	if ok := svd.Factorize(m.Dense(), mat.SVDFull); !ok {
		return Matrix3{}, errors.New("pinv: 奇异值分解失败")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)
	// 截断
	inv := make([]float64, len(s))
	if len(s) > 0 && s[0] > 0 {
		cutoff := rcond * s[0]
		for i, sv := range s {
			if sv > cutoff {
				inv[i] = 1 / sv
			}
		}
	}
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := range inv {
				sum += v.At(i, k) * inv[k] * u.At(j, k)
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// Rank 按相同截断规则统计有效奇异值数量
func Rank(m Matrix3, rcond float64) int {
	var svd mat.SVD
	if ok := svd.Factorize(m.Dense(), mat.SVDNone); !ok {
		return 0
	}
	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return 0
	}
	n := 0
	for _, sv := range s {
		if sv > rcond*s[0] {
			n++
		}
	}
	return n
}
