package model

// ========== Opinion API 响应结构（GET /topic，页码翻页） ==========

// OpinionAPIResponse 根响应（errno非0视为该页无数据）
type OpinionAPIResponse struct {
	Errno  int              `json:"errno"`
	Errmsg string           `json:"errmsg"`
	Result OpinionTopicList `json:"result"`
}

// OpinionTopicList result字段
type OpinionTopicList struct {
	List []OpinionTopic `json:"list"`
}

// OpinionTopic 单个话题；含childList时为多结果话题，需压平为N个独立二元市场
type OpinionTopic struct {
	TopicID      int64          `json:"topicId"`
	Title        string         `json:"title"`
	Abstract     string         `json:"abstract"`
	Rules        string         `json:"rules"`
	Status       int            `json:"status"`
	YesBuyPrice  string         `json:"yesBuyPrice"` // 十进制字符串价格，可空
	NoBuyPrice   string         `json:"noBuyPrice"`  // 同上；单边缺失时取另一边补数
	YesLabel     string         `json:"yesLabel"`
	NoLabel      string         `json:"noLabel"`
	Volume       string         `json:"volume"`    // 字符串数字
	Volume24h    string         `json:"volume24h"` // 字符串数字
	CutoffTime   int64          `json:"cutoffTime"` // 秒时间戳，0表示未设置
	CreateTime   int64          `json:"createTime"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	LabelName    []string       `json:"labelName"`
	ChainID      string         `json:"chainId"`
	ChildList    []OpinionTopic `json:"childList,omitempty"`
}
