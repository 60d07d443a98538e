package types

import "time"

// ContentPackage 一次发布任务的内容包，发布过程中只读
type ContentPackage struct {
	VideoPath    string            // 视频文件路径，必须存在
	Title        string            // 标题，超出平台上限时截断而不拒绝
	Description  string            // 描述，可为空
	Tags         []string          // 话题标签，可为空
	Thumbnail    string            // 封面路径，可为空
	ScheduleTime *time.Time        // 定时发布时间，nil表示立即发布
	Extra        map[string]string // 平台特定的可选字段，按键值对透传给平台适配器
}

// TruncateTitle 按平台上限截断标题，中文按字符数而非字节数计算
func (p *ContentPackage) TruncateTitle(maxRunes int) string {
	runes := []rune(p.Title)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes])
	}
	return p.Title
}
