// Package all 汇总注册全部平台适配器，使用方空导入即可。
package all

import (
	_ "Fpublisher/internal/platform/bilibili"
	_ "Fpublisher/internal/platform/douyin"
	_ "Fpublisher/internal/platform/kuaishou"
	_ "Fpublisher/internal/platform/tencent"
	_ "Fpublisher/internal/platform/xiaohongshu"
)
