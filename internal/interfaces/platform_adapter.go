package interfaces

import (
	"context"

	"MarketLens/internal/model"
)

// PlatformAdapter 所有平台必须实现的核心接口
// FetchMarkets 抓取并归一化；单条坏记录只跳过不报错，整个平台失败才返回error
type PlatformAdapter interface {
	GetType() model.PlatformType                                     // 平台类型
	FetchMarkets(ctx context.Context) ([]model.UnifiedMarket, error) // 抓取+归一化
}
