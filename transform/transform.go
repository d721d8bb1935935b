// Package transform 提供绕主轴的旋转矩阵与齐次变换.
// 所有函数无状态, 可并发调用.
package transform

import (
	"fmt"
	"math"

	"reacher/maths"
	"reacher/types"

	"gonum.org/v1/gonum/spatial/r3"
)

// RotationMatrix 绕指定主轴旋转 angle 弧度的右手旋转矩阵
//
//	axis: "x" "y" "z"（不区分大小写）
//	angle: 任意实数, 不做范围限制
func RotationMatrix(axis string, angle float64) (maths.Matrix3, error) {
	a, err := ParseAxis(axis)
	if err != nil {
		return maths.Matrix3{}, err
	}
	return Rotation(a, angle), nil
}

// Rotation 已解析轴的旋转矩阵, 无效轴 panic
func Rotation(axis Axis, angle float64) maths.Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return maths.Matrix3{
			{1, 0, 0},
			{0, c, -s},
			{0, s, c},
		}
	case AxisY:
		return maths.Matrix3{
			{c, 0, s},
			{0, 1, 0},
			{-s, 0, c},
		}
	case AxisZ:
		return maths.Matrix3{
			{c, -s, 0},
			{s, c, 0},
			{0, 0, 1},
		}
	}
	panic(fmt.Sprintf("%v: %v", types.ErrInvalidAxis, axis))
}

// HomogeneousTransform 子坐标系到父坐标系的齐次变换
//
//	v: 子坐标系原点在父坐标系中的位置
func HomogeneousTransform(axis string, angle float64, v r3.Vec) (maths.Matrix4, error) {
	rot, err := RotationMatrix(axis, angle)
	if err != nil {
		return maths.Matrix4{}, err
	}
	return maths.NewMatrix4(rot, v), nil
}

// Homogeneous 已解析轴的齐次变换
func Homogeneous(axis Axis, angle float64, v r3.Vec) maths.Matrix4 {
	return maths.NewMatrix4(Rotation(axis, angle), v)
}

// Translation 纯平移变换
func Translation(v r3.Vec) maths.Matrix4 {
	return maths.NewMatrix4(maths.Identity3(), v)
}
