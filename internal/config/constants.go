package config

const (
	DefaultDbPath         = "storage/database.db"
	DefaultCookiePath     = "storage/cookies"
	DefaultVideoPath      = "storage/videos"
	DefaultLogPath        = "storage/logs"
	DefaultScreenshotPath = "storage/screenshots"
)

// 平台标识
const (
	PlatformXiaohongshu = "xiaohongshu"
	PlatformTencent     = "tencent"
	PlatformDouyin      = "douyin"
	PlatformKuaishou    = "kuaishou"
	PlatformBilibili    = "bilibili"
)

// 平台类型编号，与账号表 type 字段和CLI的 -platform 参数一致
const (
	PlatformTypeXiaohongshu = 1
	PlatformTypeTencent     = 2
	PlatformTypeDouyin      = 3
	PlatformTypeKuaishou    = 4
	PlatformTypeBilibili    = 5
)

// 账号状态
const (
	AccountStatusInvalid = 0 // 未验证或已失效
	AccountStatusValid   = 1 // 最近一次验证通过
)

// PlatformName 根据平台类型编号返回平台标识
func PlatformName(platformType int) string {
	switch platformType {
	case PlatformTypeXiaohongshu:
		return PlatformXiaohongshu
	case PlatformTypeTencent:
		return PlatformTencent
	case PlatformTypeDouyin:
		return PlatformDouyin
	case PlatformTypeKuaishou:
		return PlatformKuaishou
	case PlatformTypeBilibili:
		return PlatformBilibili
	default:
		return ""
	}
}
