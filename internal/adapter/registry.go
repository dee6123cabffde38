package adapter

import (
	"fmt"

	"MarketLens/internal/adapter/kalshi"
	"MarketLens/internal/adapter/manifold"
	"MarketLens/internal/adapter/opinion"
	"MarketLens/internal/adapter/polymarket"
	"MarketLens/internal/config"
	"MarketLens/internal/interfaces"
	"MarketLens/internal/model"

	"github.com/sirupsen/logrus"
)

// Factory 平台适配器工厂函数签名
// 入参：平台配置、日志实例
// 出参：实现PlatformAdapter接口的适配器实例
type Factory func(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter

// builtinFactories 内置平台工厂表：新增平台仅需添加此处
var builtinFactories = map[model.PlatformType]Factory{
	model.PlatformPolymarket: polymarket.NewAdapter,
	model.PlatformKalshi:     kalshi.NewAdapter,
	model.PlatformManifold:   manifold.NewAdapter,
	model.PlatformOpinion:    opinion.NewAdapter,
}

// PlatformRegistry 平台类型→适配器实例的注册表
type PlatformRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	adapters map[model.PlatformType]interfaces.PlatformAdapter
}

// NewPlatformRegistry 按内置工厂表初始化全部平台适配器实例
func NewPlatformRegistry(cfg *config.Config, logger *logrus.Logger) *PlatformRegistry {
	r := &PlatformRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[model.PlatformType]interfaces.PlatformAdapter),
	}

	for platformType, factory := range builtinFactories {
		platformCfg := cfg.PlatformOrDefault(string(platformType))
		adapterIns := factory(&platformCfg, logger)
		if adapterIns == nil {
			logger.WithField("platform", platformType).Error("工厂函数返回nil适配器实例")
			continue
		}
		// 验证实例的平台类型是否匹配
		if adapterIns.GetType() != platformType {
			logger.WithFields(logrus.Fields{
				"factory_platform": platformType,
				"adapter_platform": adapterIns.GetType(),
			}).Error("适配器平台类型与工厂表不匹配")
			continue
		}
		r.adapters[platformType] = adapterIns
	}

	logger.WithField("instance_platforms", len(r.adapters)).Info("适配器实例初始化完成")
	return r
}

// GetAdapter 获取适配器实例
func (r *PlatformRegistry) GetAdapter(platform model.PlatformType) (interfaces.PlatformAdapter, error) {
	adapterIns, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("平台%s未初始化适配器实例", platform)
	}
	return adapterIns, nil
}

// ListRegisteredPlatforms 获取所有已初始化的平台类型列表
func (r *PlatformRegistry) ListRegisteredPlatforms() []model.PlatformType {
	var platforms []model.PlatformType
	for p := range r.adapters {
		platforms = append(platforms, p)
	}
	return platforms
}

// GetPlatformCount 获取已初始化实例的平台数量
func (r *PlatformRegistry) GetPlatformCount() int {
	return len(r.adapters)
}
