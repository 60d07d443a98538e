package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type AppConfig struct {
	DbPath         string
	CookiePath     string
	VideoPath      string
	LogPath        string
	ScreenshotPath string
	ChromePath     string // 本地浏览器路径，空则使用Playwright自带Chromium
	ListenAddr     string // HTTP服务监听地址
	DebugMode      bool   // 调试模式开关
	Headless       bool   // 浏览器无头模式开关（true=隐藏浏览器窗口）
}

var Config *AppConfig

func Init() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(exePath)

	Config = &AppConfig{
		DbPath:         filepath.Join(baseDir, DefaultDbPath),
		CookiePath:     filepath.Join(baseDir, DefaultCookiePath),
		VideoPath:      filepath.Join(baseDir, DefaultVideoPath),
		LogPath:        filepath.Join(baseDir, DefaultLogPath),
		ScreenshotPath: filepath.Join(baseDir, DefaultScreenshotPath),
		ChromePath:     os.Getenv("FPUBLISHER_CHROME"),
		ListenAddr:     listenAddr(),
		DebugMode:      os.Getenv("FPUBLISHER_DEBUG") == "true",
		Headless:       os.Getenv("FPUBLISHER_HEADLESS") == "true",
	}

	dirs := []string{
		filepath.Dir(Config.DbPath),
		Config.CookiePath,
		Config.VideoPath,
		Config.LogPath,
		Config.ScreenshotPath,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s failed: %w", dir, err)
		}
	}

	return nil
}

func listenAddr() string {
	if addr := os.Getenv("FPUBLISHER_ADDR"); addr != "" {
		return addr
	}
	return ":5409"
}

func GetDbPath() string {
	return Config.DbPath
}

// GetSnapshotPath 返回会话快照文件的绝对路径
func GetSnapshotPath(sessionRef string) string {
	return filepath.Join(Config.CookiePath, sessionRef)
}
