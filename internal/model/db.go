package model

import (
	"time"

	"gorm.io/datatypes"
)

// ========== 关注/提醒持久化模型（核心聚合逻辑不依赖这些表） ==========

// WatchlistItem 关注列表条目（按统一市场ID收藏）
type WatchlistItem struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ItemUUID  string    `gorm:"column:item_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	MarketID  string    `gorm:"column:market_id;type:varchar(128);uniqueIndex;not null;comment:统一市场ID（平台前缀）"`
	Platform  string    `gorm:"column:platform;type:varchar(32);not null;comment:来源平台"`
	Question  string    `gorm:"column:question;type:varchar(512);not null;comment:收藏时的问题文本"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (WatchlistItem) TableName() string { return "watchlist_items" }

// AlertRule 价格提醒规则
type AlertRule struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	RuleUUID    string          `gorm:"column:rule_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	MarketID    string          `gorm:"column:market_id;type:varchar(128);index;not null;comment:统一市场ID"`
	Platform    string          `gorm:"column:platform;type:varchar(32);not null;comment:来源平台"`
	Question    string          `gorm:"column:question;type:varchar(512);not null;comment:创建时的问题文本"`
	Condition   string          `gorm:"column:condition;type:varchar(8);not null;comment:触发条件：above/below"`
	TargetPrice float64         `gorm:"column:target_price;type:numeric(10,4);not null;comment:目标YES价"`
	Triggered   bool            `gorm:"column:triggered;type:boolean;default:false;comment:是否已触发"`
	TriggeredAt *time.Time      `gorm:"column:triggered_at;type:timestamp;comment:触发时间"`
	Snapshot    *datatypes.JSON `gorm:"column:snapshot;type:jsonb;comment:触发时的市场快照"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (AlertRule) TableName() string { return "alert_rules" }
