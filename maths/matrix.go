package maths

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon 浮点比较默认阈值
const Epsilon = 1e-9

// Matrix3 3x3 矩阵（旋转矩阵、雅可比矩阵）
// 值类型，复制即拷贝全部数据
type Matrix3 [3][3]float64

// Matrix4 4x4 齐次变换矩阵
// 左上 3x3 为旋转, 右上 3x1 为平移, 末行固定 [0 0 0 1]
type Matrix4 [4][4]float64

// Identity3 3x3 单位矩阵
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Identity4 4x4 单位矩阵
func Identity4() Matrix4 {
	return Matrix4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// ------------------------------ Matrix3 ------------------------------

// Mul 矩阵乘法 m*b
func (m Matrix3) Mul(b Matrix3) (out Matrix3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulVec 矩阵向量乘法 m*v
func (m Matrix3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// MulSlice 矩阵乘以长度为3的切片, 返回新切片
func (m Matrix3) MulSlice(v []float64) []float64 {
	if len(v) != 3 {
		panic(fmt.Sprintf("vector dimension mismatch: length=%d, matrix cols=3", len(v)))
	}
	out := make([]float64, 3)
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// Transpose 转置
func (m Matrix3) Transpose() (out Matrix3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Det 行列式
func (m Matrix3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Col 获取指定列
func (m Matrix3) Col(j int) r3.Vec {
	return r3.Vec{X: m[0][j], Y: m[1][j], Z: m[2][j]}
}

// SetCol 设置指定列（值接收者, 返回新矩阵）
func (m Matrix3) SetCol(j int, v r3.Vec) Matrix3 {
	m[0][j], m[1][j], m[2][j] = v.X, v.Y, v.Z
	return m
}

// ApproxEqual 逐元素比较
func (m Matrix3) ApproxEqual(b Matrix3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// IsFinite 检查所有元素是否为有限值
func (m Matrix3) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Dense 转换为 gonum 稠密矩阵
func (m Matrix3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// FromDense 从 gonum 矩阵构建（维度必须为3x3）
func FromDense(a mat.Matrix) (out Matrix3) {
	r, c := a.Dims()
	if r != 3 || c != 3 {
		panic(fmt.Sprintf("dimension mismatch: %dx%d, want 3x3", r, c))
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a.At(i, j)
		}
	}
	return out
}

// String 格式化输出矩阵
func (m Matrix3) String() string {
	return formatRows([][]float64{m[0][:], m[1][:], m[2][:]})
}

// ------------------------------ Matrix4 ------------------------------

// NewMatrix4 由旋转和平移构建齐次变换
func NewMatrix4(rot Matrix3, v r3.Vec) Matrix4 {
	return Matrix4{
		{rot[0][0], rot[0][1], rot[0][2], v.X},
		{rot[1][0], rot[1][1], rot[1][2], v.Y},
		{rot[2][0], rot[2][1], rot[2][2], v.Z},
		{0, 0, 0, 1},
	}
}

// Mul 矩阵乘法 m*b, 即先父坐标系 m 再子坐标系 b
func (m Matrix4) Mul(b Matrix4) (out Matrix4) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Rotation 左上 3x3 旋转块
func (m Matrix4) Rotation() (out Matrix3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j]
		}
	}
	return out
}

// Translation 右上平移列, 即子坐标系原点在父坐标系中的位置
func (m Matrix4) Translation() r3.Vec {
	return r3.Vec{X: m[0][3], Y: m[1][3], Z: m[2][3]}
}

// Apply 将子坐标系中的点映射到父坐标系
func (m Matrix4) Apply(p r3.Vec) r3.Vec {
	return r3.Add(m.Rotation().MulVec(p), m.Translation())
}

// ApproxEqual 逐元素比较
func (m Matrix4) ApproxEqual(b Matrix4, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// String 格式化输出矩阵
func (m Matrix4) String() string {
	return formatRows([][]float64{m[0][:], m[1][:], m[2][:], m[3][:]})
}

func formatRows(rows [][]float64) string {
	var sb strings.Builder
	for i, row := range rows {
		sb.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "% .6f", v)
		}
		sb.WriteByte(']')
		if i < len(rows)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
