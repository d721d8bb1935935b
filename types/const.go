package types

// 关节索引定义
const (
	Hip        = 0 // 髋关节
	Shoulder   = 1 // 肩关节
	Elbow      = 2 // 肘关节
	JointCount = 3 // 关节数量
)

// 默认几何常量定义 (单位: 米)
const (
	DefaultHipOffset = 0.0335 // 髋关节横向偏移
	DefaultUpperLeg  = 0.10   // 大腿连杆长度
	DefaultLowerLeg  = 0.13   // 小腿连杆长度
)

// 默认参数常量定义
const (
	Tolerance          = 0.01 // 收敛容差 (米)
	Perturbation       = 1e-4 // 有限差分扰动 (弧度)
	MaxIterations      = 10   // 最大迭代次数
	SingularCutoff     = 1e-6 // 伪逆奇异值相对截断
	VerifyThreshold    = 0.05 // 下发前复核距离阈值 (米)
	DefaultCameraDepth = 0.67 // 相机离地高度 (米)
	DefaultBaseHeight  = -0.07
)

// JointNames 关节名称
var JointNames = [JointCount]string{"hip", "shoulder", "elbow"}
