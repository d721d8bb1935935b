package reacher

import (
	"errors"
	"fmt"
	"os"

	"reacher/camera"
	"reacher/ik"
	"reacher/kinematics"
	"reacher/types"

	"gopkg.in/yaml.v3"
)

// VerifyConfig 下发前复核参数
type VerifyConfig struct {
	Threshold float64   `yaml:"threshold"` // 足端与目标允许的最大距离 (米)
	Fallback  []float64 `yaml:"fallback"`  // 复核失败时的安全关节角
}

// Config 完整配置
type Config struct {
	Geometry kinematics.Geometry `yaml:"geometry"`
	Solver   ik.Options          `yaml:"solver"`
	Verify   VerifyConfig        `yaml:"verify"`
	Camera   camera.Config       `yaml:"camera"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Geometry: kinematics.DefaultGeometry(),
		Solver:   ik.DefaultOptions(),
		Verify:   VerifyConfig{Threshold: types.VerifyThreshold},
		Camera:   camera.DefaultConfig(),
	}
}

// ParseConfig 解析 YAML, 未出现的字段保留默认值
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig 从文件加载配置
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// Validate 校验配置
func (cfg Config) Validate() error {
	var errs []error
	if err := cfg.Geometry.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Solver.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !(cfg.Verify.Threshold > 0) {
		errs = append(errs, fmt.Errorf("%w: verify.threshold=%v", types.ErrInvalidInput, cfg.Verify.Threshold))
	}
	if len(cfg.Verify.Fallback) != 0 {
		if err := types.CheckAngles(cfg.Verify.Fallback); err != nil {
			errs = append(errs, fmt.Errorf("verify.fallback: %w", err))
		}
	}
	return errors.Join(errs...)
}
