package types

import (
	"errors"
	"fmt"
	"math"
)

// 错误定义
var (
	ErrInvalidAxis        = errors.New("无效旋转轴")
	ErrInvalidInput       = errors.New("无效输入")
	ErrUnverifiedSolution = errors.New("逆解未通过复核")
)

// CheckAngles 校验关节角向量长度与数值
func CheckAngles(angles []float64) error {
	if len(angles) != JointCount {
		return fmt.Errorf("%w: 需要 %d 个关节角, 得到 %d", ErrInvalidInput, JointCount, len(angles))
	}
	for i, v := range angles {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s 关节角非有限值 %v", ErrInvalidInput, JointNames[i], v)
		}
	}
	return nil
}
