package kuaishou

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

// NewAdapter 快手适配器
func NewAdapter() *platform.Adapter {
	return &platform.Adapter{
		Name: config.PlatformKuaishou,
		Type: config.PlatformTypeKuaishou,

		LoginEntry: "https://cp.kuaishou.com",
		QRExtract:  extractQR,

		ValidateURL: "https://cp.kuaishou.com/article/publish/video",
		LoginMarkers: []resolver.Candidate{
			resolver.Css("未登录首页标记", "div.names div.container div.name:text('机构服务')"),
			resolver.Text("扫码登录"),
			resolver.Css("密码输入框", "input[type='password']"),
		},

		UploadEntries: []string{
			"https://cp.kuaishou.com/article/publish/video",
		},
		FileInput: []resolver.Candidate{
			resolver.Css("上传按钮输入框", "button[class^='_upload-btn'] input[type='file']"),
			resolver.Css("通用文件输入框", "input[type='file']"),
		},
		Fields: map[platform.Field][]resolver.Candidate{
			platform.FieldDescription: {
				resolver.Css("描述编辑区", "div#work-description-edit"),
				resolver.Css("描述兜底", "div[class*='description'] [contenteditable='true']"),
			},
			platform.FieldTags: {
				resolver.Css("描述编辑区", "div#work-description-edit"),
				resolver.Css("描述兜底", "div[class*='description'] [contenteditable='true']"),
			},
		},
		// 快手没有独立标题栏，标题并入描述首行
		TitleMaxLen:  100,
		TagAffirmKey: "Space",

		Signals: platform.StatusSignals{
			InProgress: []resolver.Candidate{
				resolver.Text("上传中"),
				resolver.Css("上传进度", "[class*='progress'], [class*='uploading']"),
			},
			Complete: []resolver.Candidate{
				resolver.Css("上传成功标记", "[class*='success'] >> text=上传成功"),
				resolver.Css("视频预览", "video, .video-preview, [class*='videoPreview']"),
			},
		},
		ProcessingTimeoutFatal: true,

		PublishControl: []resolver.Candidate{
			resolver.Css("发布按钮", "div[class^='_section-form'] button:has-text('发布')"),
			resolver.Role(*playwright.AriaRoleButton, "发布", true),
		},

		ScheduleSetter: setSchedule,
	}
}

// extractQR 快手需要先点击"立即登录"再切换到扫码登录
func extractQR(page playwright.Page) (string, error) {
	if err := page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: "立即登录",
	}).Click(); err != nil {
		return "", fmt.Errorf("点击立即登录失败: %w", err)
	}
	if err := page.GetByText("扫码登录").Click(); err != nil {
		return "", fmt.Errorf("切换扫码登录失败: %w", err)
	}
	img := page.GetByRole(*playwright.AriaRoleImg, playwright.PageGetByRoleOptions{Name: "qrcode"})
	src, err := img.GetAttribute("src")
	if err != nil {
		return "", fmt.Errorf("获取二维码图片失败: %w", err)
	}
	return src, nil
}

// setSchedule 切换定时发布单选并写入时间
func setSchedule(page playwright.Page, t time.Time) error {
	if err := page.Locator("label:has-text('定时发布')").First().Click(); err != nil {
		return fmt.Errorf("点击定时发布失败: %w", err)
	}
	time.Sleep(1 * time.Second)

	input := page.Locator("div[class^='_schedule'] input, input[placeholder*='选择日期']").First()
	if err := input.Click(); err != nil {
		return fmt.Errorf("点击时间输入框失败: %w", err)
	}
	if err := page.Keyboard().Press("Control+KeyA"); err != nil {
		return err
	}
	if err := page.Keyboard().Type(t.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	if err := page.Keyboard().Press("Enter"); err != nil {
		return err
	}
	time.Sleep(1 * time.Second)
	return nil
}
