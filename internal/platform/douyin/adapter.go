package douyin

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

// NewAdapter 抖音适配器。
// 选择器基于创作者中心2024.06改版后的页面结构。
func NewAdapter() *platform.Adapter {
	return &platform.Adapter{
		Name: config.PlatformDouyin,
		Type: config.PlatformTypeDouyin,

		LoginEntry: "https://creator.douyin.com/",
		QRExtract:  extractQR,

		ValidateURL:       "https://creator.douyin.com/creator-micro/content/upload",
		ValidateExpectURL: "https://creator.douyin.com/creator-micro/content/upload",
		LoginMarkers: []resolver.Candidate{
			resolver.Text("手机号登录"),
			resolver.Text("扫码登录"),
			resolver.Css("密码输入框", "input[type='password']"),
		},

		UploadEntries: []string{
			"https://creator.douyin.com/creator-micro/content/post/video?enter_from=publish_page",
			"https://creator.douyin.com/creator-micro/content/upload",
		},
		FileInput: []resolver.Candidate{
			resolver.Css("上传卡片文件输入框", "div[class^='upload-card'] input[type=file]"),
			resolver.Css("容器文件输入框", "div[class^='container'] input[type='file']"),
			resolver.Css("通用文件输入框", "input[type='file']"),
		},
		Fields: map[platform.Field][]resolver.Candidate{
			platform.FieldTitle: {
				resolver.Css("标题输入框", "div[class^='container-'] input[type=text]"),
				titleBySiblingLabel(),
				resolver.Css("标题兜底", ".notranslate"),
			},
			platform.FieldDescription: {
				descBySiblingLabel(),
			},
			platform.FieldTags: {
				resolver.Css("话题输入区", ".zone-container"),
				resolver.Css("话题兜底", "div[class*='tag'], div[class*='topic']"),
			},
		},
		TitleMaxLen:  30,
		TagAffirmKey: "Space",

		Signals: platform.StatusSignals{
			InProgress: []resolver.Candidate{
				resolver.Css("上传进度", "div.progress-div"),
				resolver.Css("上传中文案", "text=/上传中|正在上传/"),
			},
			Complete: []resolver.Candidate{
				resolver.Css("重新上传入口", `[class^="long-card"] div:has-text("重新上传")`),
				resolver.Css("上传完成文案", "text=/上传成功|上传完成/"),
			},
		},
		ProcessingTimeoutFatal: true,

		PublishControl: []resolver.Candidate{
			resolver.Role(*playwright.AriaRoleButton, "发布", true),
		},

		ScheduleSetter: setSchedule,
		ExtraSetter:    setExtra,
	}
}

// extractQR 登录页二维码直接以img角色渲染
func extractQR(page playwright.Page) (string, error) {
	img := page.GetByRole(*playwright.AriaRoleImg, playwright.PageGetByRoleOptions{Name: "二维码"})
	src, err := img.GetAttribute("src")
	if err != nil {
		return "", fmt.Errorf("获取二维码图片失败: %w", err)
	}
	return src, nil
}

func titleBySiblingLabel() resolver.Candidate {
	return resolver.Candidate{
		Desc: "作品标题相邻输入框",
		Build: func(page playwright.Page) playwright.Locator {
			return page.GetByText("作品标题").Locator("..").
				Locator("xpath=following-sibling::div[1]").Locator("input")
		},
	}
}

func descBySiblingLabel() resolver.Candidate {
	return resolver.Candidate{
		Desc: "作品描述相邻编辑区",
		Build: func(page playwright.Page) playwright.Locator {
			return page.GetByText("作品描述").Locator("..").
				Locator("xpath=following-sibling::div[1]").Locator("textarea, .notranslate")
		},
	}
}

// setSchedule 勾选定时发布并通过键盘写入"日期和时间"输入框
func setSchedule(page playwright.Page, t time.Time) error {
	label := page.Locator("[class^='radio']:has-text('定时发布')")
	if err := label.Click(); err != nil {
		return fmt.Errorf("点击定时发布失败: %w", err)
	}
	time.Sleep(1 * time.Second)

	input := page.Locator(`.semi-input[placeholder="日期和时间"]`)
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

// setExtra 抖音支持的可选字段：地理位置
func setExtra(page playwright.Page, key, value string) error {
	switch key {
	case "location":
		if err := page.Locator(`div.semi-select span:has-text("输入地理位置")`).Click(); err != nil {
			return err
		}
		if err := page.Keyboard().Press("Backspace"); err != nil {
			return err
		}
		time.Sleep(2 * time.Second)
		if err := page.Keyboard().Type(value); err != nil {
			return err
		}
		if _, err := page.WaitForSelector(`div[role="listbox"] [role="option"]`, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(5000),
		}); err != nil {
			return err
		}
		return page.Locator(`div[role="listbox"] [role="option"]`).First().Click()
	default:
		return fmt.Errorf("不支持的可选字段: %s", key)
	}
}
