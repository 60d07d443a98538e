package xiaohongshu

import (
	"fmt"
	"time"

	"Fpublisher/internal/config"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/resolver"

	"github.com/playwright-community/playwright-go"
)

func init() {
	platform.Register(NewAdapter())
}

// NewAdapter 小红书适配器
func NewAdapter() *platform.Adapter {
	return &platform.Adapter{
		Name: config.PlatformXiaohongshu,
		Type: config.PlatformTypeXiaohongshu,

		LoginEntry: "https://creator.xiaohongshu.com/",
		QRExtract:  extractQR,

		ValidateURL:       "https://creator.xiaohongshu.com/creator-micro/content/upload",
		ValidateExpectURL: "https://creator.xiaohongshu.com/creator-micro/content/upload",
		LoginMarkers: []resolver.Candidate{
			resolver.Text("手机号登录"),
			resolver.Text("扫码登录"),
			resolver.Css("密码输入框", "input[type='password']"),
		},

		UploadEntries: []string{
			"https://creator.xiaohongshu.com/publish/publish?source=official",
			"https://creator.xiaohongshu.com/creator-micro/content/upload",
		},
		FileInput: []resolver.Candidate{
			resolver.Css("上传区域文件输入框", "div[class*='upload'] input[type='file']"),
			resolver.Css("通用文件输入框", "input[type='file']"),
		},
		Fields: map[platform.Field][]resolver.Candidate{
			platform.FieldTitle: {
				resolver.Placeholder("填写标题会有更多赞哦～"),
				resolver.Css("标题输入框", "input[placeholder*='标题']"),
			},
			platform.FieldDescription: {
				resolver.Css("正文编辑区", "div.ql-editor"),
				resolver.Css("正文兜底", "div[contenteditable='true']"),
			},
			platform.FieldTags: {
				resolver.Css("正文编辑区", "div.ql-editor"),
				resolver.Css("正文兜底", "div[contenteditable='true']"),
			},
		},
		TitleMaxLen:  20,
		TagAffirmKey: "Enter",

		Signals: platform.StatusSignals{
			InProgress: []resolver.Candidate{
				resolver.Text("上传中"),
				resolver.Css("上传进度", "[class*='progress'], [class*='uploading']"),
			},
			Complete: []resolver.Candidate{
				resolver.Text("上传成功"),
				resolver.Css("重新上传入口", "div[class*='reupload'], text=重新上传"),
			},
		},
		ProcessingTimeoutFatal: true,

		PublishControl: []resolver.Candidate{
			resolver.Css("发布按钮", "div.submit button:has-text('发布')"),
			resolver.Role(*playwright.AriaRoleButton, "发布", true),
		},

		ScheduleSetter: setSchedule,
	}
}

// extractQR 创作者首页需要先切换到二维码登录视图
func extractQR(page playwright.Page) (string, error) {
	if err := page.Locator("img.css-wemwzq").Click(); err != nil {
		return "", fmt.Errorf("切换二维码登录失败: %w", err)
	}
	img := page.GetByRole(*playwright.AriaRoleImg).Nth(2)
	src, err := img.GetAttribute("src")
	if err != nil {
		return "", fmt.Errorf("获取二维码图片失败: %w", err)
	}
	return src, nil
}

// setSchedule 切换定时发布并写入时间
func setSchedule(page playwright.Page, t time.Time) error {
	if err := page.Locator("label:has-text('定时发布')").First().Click(); err != nil {
		return fmt.Errorf("点击定时发布失败: %w", err)
	}
	time.Sleep(1 * time.Second)

	input := page.Locator("input[placeholder*='选择日期和时间']").First()
	if err := input.Click(); err != nil {
		return fmt.Errorf("点击时间输入框失败: %w", err)
	}
	if err := page.Keyboard().Press("Control+KeyA"); err != nil {
		return err
	}
	if err := page.Keyboard().Type(t.Format("2006-01-02 15:04")); err != nil {
		return err
	}
	if err := page.Keyboard().Press("Enter"); err != nil {
		return err
	}
	time.Sleep(1 * time.Second)
	return nil
}
