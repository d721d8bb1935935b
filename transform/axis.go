package transform

import (
	"fmt"
	"strings"

	"reacher/types"
)

// Axis 主旋转轴
type Axis uint8

// 轴定义
const (
	AxisX Axis = iota + 1
	AxisY
	AxisZ
)

// ParseAxis 解析轴名称（不区分大小写）
// 只接受 "x" "y" "z", 其他输入返回 ErrInvalidAxis, 不会默认为单位变换
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", types.ErrInvalidAxis, s)
}

// Valid 是否为有效轴
func (a Axis) Valid() bool { return a >= AxisX && a <= AxisZ }

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// MarshalText 文本序列化
func (a Axis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidAxis, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText 文本反序列化
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
