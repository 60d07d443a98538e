// Package session 校验已保存的会话快照是否仍处于登录态。
package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"Fpublisher/internal/browser"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/resolver"
	"Fpublisher/internal/store"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeout 单次校验的导航等待上限
const DefaultTimeout = 5 * time.Second

type Validator struct {
	launcher *browser.Launcher
	store    *store.Store
}

func NewValidator(launcher *browser.Launcher, s *store.Store) *Validator {
	return &Validator{launcher: launcher, store: s}
}

// Validate 将快照载入全新隔离上下文并访问平台的登录态页面。
// 导航失败、落到登录域名或页面出现登录提示标记都判为失效；
// 任何内部异常也折叠为失效，从不向调用方抛错。
// 浏览器资源在所有返回路径上都会被关闭。
func (v *Validator) Validate(ctx context.Context, adapter *platform.Adapter, sessionRef string, timeout time.Duration, preview bool) types.Verdict {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	snapshotPath := v.store.SnapshotPath(sessionRef)
	if _, err := os.Stat(snapshotPath); err != nil {
		utils.WarnWithPlatform(adapter.Name, "快照文件不存在")
		return types.VerdictExpired
	}

	launcher := *v.launcher
	if preview {
		launcher.Headless = false
	}

	instance, err := launcher.Launch()
	if err != nil {
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("启动浏览器失败: %v", err))
		return types.VerdictExpired
	}

	sess, err := instance.NewSession(adapter.Name, snapshotPath)
	if err != nil {
		instance.Close()
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("创建上下文失败: %v", err))
		return types.VerdictExpired
	}
	defer sess.Teardown()

	page := sess.Page()
	if _, err := page.Goto(adapter.ValidateURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds()) * 2),
	}); err != nil {
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("打开校验页面失败: %v", err))
		return types.VerdictExpired
	}

	if adapter.ValidateExpectURL != "" {
		if err := page.WaitForURL(adapter.ValidateExpectURL, playwright.PageWaitForURLOptions{
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		}); err != nil {
			utils.WarnWithPlatform(adapter.Name, "cookie 失效")
			return types.VerdictExpired
		}
	} else {
		time.Sleep(timeout)
	}

	if adapter.LoginDomain != "" && strings.Contains(page.URL(), adapter.LoginDomain) {
		utils.WarnWithPlatform(adapter.Name, "页面重定向到登录域名，cookie失效")
		return types.VerdictExpired
	}

	if HasLoginMarkers(page, adapter.LoginMarkers) {
		utils.WarnWithPlatform(adapter.Name, "cookie 失效")
		if preview {
			time.Sleep(1500 * time.Millisecond)
		}
		return types.VerdictExpired
	}

	utils.SuccessWithPlatform(adapter.Name, "cookie 有效")
	if preview {
		time.Sleep(1500 * time.Millisecond)
	}
	return types.VerdictLive
}

// HasLoginMarkers 扫描页面是否出现登录提示标记。
// 查询异常按未命中处理，不上抛。
func HasLoginMarkers(page playwright.Page, markers []resolver.Candidate) bool {
	for _, marker := range markers {
		count, err := marker.Build(page).Count()
		if err != nil {
			continue
		}
		if count > 0 {
			return true
		}
	}
	return false
}
