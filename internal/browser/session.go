package browser

import (
	"encoding/json"
	"fmt"
	"os"

	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// Session 一次运行独占的浏览器上下文及页面。
// 上下文在运行之间从不共享，终态时必须Teardown。
type Session struct {
	instance *Instance
	context  playwright.BrowserContext
	page     playwright.Page
	platform string
}

// NewSession 从会话快照文件打开上下文。snapshotPath为空或文件不存在时
// 打开全新未登录上下文。初始化脚本在首次导航前注入。
func (i *Instance) NewSession(platform, snapshotPath string) (*Session, error) {
	contextOptions := playwright.BrowserNewContextOptions{
		Locale:      playwright.String("zh-CN"),
		TimezoneId:  playwright.String("Asia/Shanghai"),
		ColorScheme: playwright.ColorSchemeLight,
		Viewport:    &playwright.Size{Width: 1920, Height: 1080},
		UserAgent:   playwright.String("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"),
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
		},
	}

	if snapshotPath != "" {
		if _, err := os.Stat(snapshotPath); err == nil {
			contextOptions.StorageStatePath = playwright.String(snapshotPath)
		}
	}

	context, err := i.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("create context failed: %w", err)
	}

	if err := injectStealthScript(context); err != nil {
		_ = context.Close()
		return nil, fmt.Errorf("inject stealth script failed: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		return nil, fmt.Errorf("create page failed: %w", err)
	}
	page.SetDefaultTimeout(30000)
	page.SetDefaultNavigationTimeout(30000)

	return &Session{
		instance: i,
		context:  context,
		page:     page,
		platform: platform,
	}, nil
}

// Page 返回会话页面
func (s *Session) Page() playwright.Page {
	return s.page
}

// CaptureState 捕获当前上下文的完整存储状态（cookie+storage）
func (s *Session) CaptureState() ([]byte, error) {
	storage, err := s.context.StorageState()
	if err != nil {
		return nil, fmt.Errorf("capture storage state failed: %w", err)
	}
	data, err := json.Marshal(storage)
	if err != nil {
		return nil, fmt.Errorf("marshal storage state failed: %w", err)
	}
	return data, nil
}

// Teardown 关闭页面、上下文和浏览器。
// 任何一步失败只记日志不上抛，保证终态路径不被清理错误掩盖。
func (s *Session) Teardown() {
	platform := s.platform
	if platform == "" {
		platform = "browser"
	}

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			utils.WarnWithPlatform(platform, fmt.Sprintf("关闭页面失败: %v", err))
		}
		s.page = nil
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			utils.WarnWithPlatform(platform, fmt.Sprintf("关闭上下文失败: %v", err))
		}
		s.context = nil
	}
	s.instance.Close()
}

// Close 关闭浏览器实例并停止playwright驱动
func (i *Instance) Close() {
	if i.browser != nil {
		if err := i.browser.Close(); err != nil {
			utils.Warn(fmt.Sprintf("[-] 关闭浏览器失败: %v", err))
		}
		i.browser = nil
	}
	if i.pw != nil {
		if err := i.pw.Stop(); err != nil {
			utils.Warn(fmt.Sprintf("[-] 停止playwright失败: %v", err))
		}
		i.pw = nil
	}
}
