package tencent

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

// NewAdapter 微信视频号适配器
func NewAdapter() *platform.Adapter {
	return &platform.Adapter{
		Name: config.PlatformTencent,
		Type: config.PlatformTypeTencent,

		LoginEntry: "https://channels.weixin.qq.com",
		QRExtract:  extractQR,

		// 视频号登录页不跳转专用域名，失效通过"微信小店"入口标记判断
		ValidateURL: "https://channels.weixin.qq.com/platform/post/create",
		LoginMarkers: []resolver.Candidate{
			resolver.Css("未登录首页标记", `div.title-name:has-text("微信小店")`),
			resolver.Text("扫码登录"),
		},

		UploadEntries: []string{
			"https://channels.weixin.qq.com/platform/post/create",
		},
		FileInput: []resolver.Candidate{
			resolver.Css("上传按钮隐藏输入框", `span.ant-upload.ant-upload-btn > input[type="file"][accept^="video/"]`),
			resolver.Css("视频文件输入框", `input[type='file'][accept*='video']`),
			resolver.Css("通用文件输入框", `input[type='file']`),
		},
		Fields: map[platform.Field][]resolver.Candidate{
			platform.FieldTitle: {
				resolver.Placeholder("概括视频主要内容，字数建议6-16个字符"),
				resolver.Css("短标题输入框", "input[placeholder*='概括']"),
			},
			platform.FieldDescription: {
				resolver.Css("描述编辑区", "div.input-editor"),
			},
			platform.FieldTags: {
				resolver.Css("描述编辑区", "div.input-editor"),
			},
		},
		TitleMaxLen:  16,
		TagAffirmKey: "Space",

		Signals: platform.StatusSignals{
			InProgress: []resolver.Candidate{
				resolver.Text("上传中"),
				resolver.Css("删除标记", "div.media-status-content div.tag-inner:has-text('删除')"),
			},
			// 发表按钮脱离禁用态即视为处理完成
			Complete: []resolver.Candidate{
				resolver.Css("发表按钮可用", "button.weui-desktop-btn_primary:has-text('发表'):not(.weui-desktop-btn_disabled)"),
			},
		},
		// 视频号允许在服务端转码完成前发表，等待耗尽只警告不终止
		ProcessingTimeoutFatal: false,

		PublishControl: []resolver.Candidate{
			resolver.Css("发表按钮", "button.weui-desktop-btn_primary:has-text('发表')"),
			resolver.Role(*playwright.AriaRoleButton, "发表", true),
		},
		PublishGrace: 2 * time.Second,

		ScheduleSetter: setSchedule,
		ExtraSetter:    setExtra,
	}
}

// extractQR 视频号二维码渲染在iframe内
func extractQR(page playwright.Page) (string, error) {
	img := page.FrameLocator("iframe").Locator("img").First()
	src, err := img.GetAttribute("src")
	if err != nil {
		return "", fmt.Errorf("获取二维码图片失败: %w", err)
	}
	return src, nil
}

// setSchedule 切换定时发表并写入日期时间
func setSchedule(page playwright.Page, t time.Time) error {
	if err := page.Locator(`label:has-text("定时")`).First().Click(); err != nil {
		return fmt.Errorf("点击定时发表失败: %w", err)
	}
	time.Sleep(1 * time.Second)

	if err := page.Locator("input[placeholder*='日期']").First().Click(); err != nil {
		return fmt.Errorf("点击日期选择器失败: %w", err)
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

// setExtra 视频号支持的可选字段：原创声明、合集
func setExtra(page playwright.Page, key, value string) error {
	switch key {
	case "original":
		if value != "true" {
			return nil
		}
		if err := page.Locator(`label:has-text("声明原创")`).First().Click(); err != nil {
			return err
		}
		time.Sleep(1 * time.Second)
		agree := page.Locator(`label:has-text("我已阅读并同意")`).First()
		if count, _ := agree.Count(); count > 0 {
			if err := agree.Click(); err != nil {
				return err
			}
		}
		confirm := page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
			Name: "声明原创", Exact: playwright.Bool(true),
		})
		if count, _ := confirm.Count(); count > 0 {
			return confirm.Click()
		}
		return nil
	case "collection":
		if err := page.Locator(`div.post-album-wrap`).First().Click(); err != nil {
			return err
		}
		time.Sleep(1 * time.Second)
		return page.Locator(fmt.Sprintf(`div.option-item:has-text("%s")`, value)).First().Click()
	default:
		return fmt.Errorf("不支持的可选字段: %s", key)
	}
}
