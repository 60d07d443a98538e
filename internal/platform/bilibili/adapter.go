package bilibili

import (
	"time"

	"Fpublisher/internal/config"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/resolver"
	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

func init() {
	platform.Register(NewAdapter())
}

// NewAdapter B站适配器
func NewAdapter() *platform.Adapter {
	return &platform.Adapter{
		Name: config.PlatformBilibili,
		Type: config.PlatformTypeBilibili,

		LoginEntry: "https://member.bilibili.com/platform/upload/video/frame",
		QRExtract:  extractQR,

		ValidateURL: "https://member.bilibili.com/platform/upload/video/frame",
		// B站失效时会跳转到专用登录域名
		LoginDomain: "passport.bilibili.com",
		LoginMarkers: []resolver.Candidate{
			resolver.Css("登录按钮", `button:has-text("立即登录")`),
			resolver.Css("扫码登录按钮", `button:has-text("扫码登录")`),
			resolver.Css("登录表单", `form[action*="login"]`),
			resolver.Css("登录表单类", ".login-form"),
			resolver.Css("密码输入框", `input[type="password"]`),
			resolver.Css("二维码登录区域", ".qr-login"),
		},

		UploadEntries: []string{
			"https://member.bilibili.com/platform/upload/video/frame",
		},
		FileInput: []resolver.Candidate{
			resolver.Css("上传区域文件输入框", "div.bcc-upload-wrapper input[type='file']"),
			resolver.Css("通用文件输入框", "input[type='file']"),
		},
		Fields: map[platform.Field][]resolver.Candidate{
			platform.FieldTitle: {
				resolver.Placeholder("请输入稿件标题"),
				resolver.Css("标题输入框", "input[placeholder*='标题']"),
			},
			platform.FieldDescription: {
				resolver.Css("简介编辑区", "div[data-placeholder*='简介'] [contenteditable='true']"),
				resolver.Css("简介兜底", ".archive-info-editor [contenteditable='true']"),
			},
			platform.FieldTags: {
				resolver.Placeholder("按回车键Enter创建标签"),
				resolver.Css("标签输入框", "input[placeholder*='标签']"),
			},
			platform.FieldCategory: {
				resolver.Css("分区选择器", "div.select-container"),
			},
		},
		TitleMaxLen:  80,
		TagAffirmKey: "Enter",

		Signals: platform.StatusSignals{
			InProgress: []resolver.Candidate{
				resolver.Css("上传中文案", "text=/上传中|正在上传|剩余时间/"),
			},
			Complete: []resolver.Candidate{
				resolver.Text("上传完成"),
				resolver.Css("完成标记", "div[class*='success'], .upload-success"),
			},
		},
		// B站允许转码期间投稿，等待耗尽只警告不终止
		ProcessingTimeoutFatal: false,

		PublishControl: []resolver.Candidate{
			resolver.Css("投稿按钮", "button:has-text('立即投稿')"),
			resolver.Text("立即投稿"),
		},
		PublishGrace: 2 * time.Second,

		ScheduleSetter: setSchedule,
	}
}

// extractQR B站登录页二维码不稳定，找不到时不视为致命错误
func extractQR(page playwright.Page) (string, error) {
	img := page.Locator(`img[src*="qrcode"]`).First()
	if count, _ := img.Count(); count == 0 {
		img = page.Locator("img").First()
	}
	if count, _ := img.Count(); count == 0 {
		utils.WarnWithPlatform(config.PlatformBilibili, "未找到二维码图片元素")
		return "", nil
	}
	src, err := img.GetAttribute("src")
	if err != nil {
		utils.WarnWithPlatform(config.PlatformBilibili, "读取二维码src失败")
		return "", nil
	}
	return src, nil
}

// setSchedule 打开定时发布开关并写入时间
func setSchedule(page playwright.Page, t time.Time) error {
	if err := page.Locator("div.switch-container, label:has-text('定时发布')").First().Click(); err != nil {
		return err
	}
	time.Sleep(1 * time.Second)

	input := page.Locator("input[placeholder*='选择日期']").First()
	if err := input.Click(); err != nil {
		return err
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
