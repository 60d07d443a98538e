package browser

import (
	"fmt"
	"os"

	"Fpublisher/internal/config"
	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// Launcher 负责启动浏览器实例，每次Launch产出一个独占的Instance
type Launcher struct {
	Headless   bool
	ChromePath string
}

// NewLauncher 从全局配置创建启动器
func NewLauncher() *Launcher {
	return &Launcher{
		Headless:   config.Config.Headless,
		ChromePath: config.Config.ChromePath,
	}
}

// Instance 一次运行独占的浏览器实例
type Instance struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch 启动Chromium。优先使用配置或本机安装的Chrome（专有编解码支持），
// 找不到时回落到Playwright自带Chromium。
func (l *Launcher) Launch() (*Instance, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright failed: %w", err)
	}

	chromePath := l.ChromePath
	if chromePath == "" {
		chromePath = findLocalChrome()
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--window-size=1920,1080",
			"--disable-infobars",
			"--disable-extensions",
			"--disable-background-networking",
			"--disable-sync",
			"--disable-translate",
			"--disable-popup-blocking",
			"--autoplay-policy=no-user-gesture-required",
			"--mute-audio",
			"--lang=zh-CN",
		},
	}

	if chromePath != "" {
		launchOptions.ExecutablePath = playwright.String(chromePath)
		utils.Info("[-] 使用本地 Chrome 启动浏览器")
	}

	browser, err := pw.Chromium.Launch(launchOptions)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser failed: %w", err)
	}

	return &Instance{pw: pw, browser: browser}, nil
}

// findLocalChrome 探测常见安装路径下的Chrome
func findLocalChrome() string {
	paths := []string{
		`/usr/bin/google-chrome`,
		`/usr/bin/google-chrome-stable`,
		`/opt/google/chrome/chrome`,
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range paths {
		if path != "" {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
