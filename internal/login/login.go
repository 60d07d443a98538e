// Package login 实现扫码登录流程：打开登录入口、推送二维码、
// 等待主框架跳转、落盘快照并登记账号。
package login

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Fpublisher/internal/browser"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/progress"
	"Fpublisher/internal/session"
	"Fpublisher/internal/store"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// NavigationTimeout 扫码后等待页面跳转的上限
const NavigationTimeout = 200 * time.Second

// Options 一次登录的参数
type Options struct {
	AccountName  string
	PlatformType int
	// UpdateMode为true且RecordID>0时覆盖已有账号记录，否则追加新行
	UpdateMode bool
	RecordID   int
}

type Flow struct {
	launcher  *browser.Launcher
	store     *store.Store
	validator *session.Validator
}

func NewFlow(launcher *browser.Launcher, s *store.Store, v *session.Validator) *Flow {
	return &Flow{launcher: launcher, store: s, validator: v}
}

// Run 执行扫码登录。进度消息推送到q：二维码图片数据一条，
// 终态"200"或"500"一条。成功时返回新快照标识。
// 浏览器资源在所有返回路径上都会被关闭。
func (f *Flow) Run(ctx context.Context, opts Options, q *progress.Queue) (string, error) {
	adapter, err := platform.Get(opts.PlatformType)
	if err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", err
	}

	// 扫码必须有可见窗口
	launcher := *f.launcher
	launcher.Headless = false

	instance, err := launcher.Launch()
	if err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", fmt.Errorf("启动浏览器失败: %w", err)
	}

	sess, err := instance.NewSession(adapter.Name, "")
	if err != nil {
		instance.Close()
		q.Put(types.ProgressCodeFailure)
		return "", fmt.Errorf("创建上下文失败: %w", err)
	}

	snapshot, err := f.runInSession(ctx, adapter, sess, q)
	sess.Teardown()
	if err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", err
	}

	sessionRef, err := store.NewSessionRef()
	if err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", err
	}
	if err := f.store.WriteSnapshot(sessionRef, snapshot); err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", err
	}

	// 登记前用独立上下文复核快照，防止写入半登录态
	if verdict := f.validator.Validate(ctx, adapter, sessionRef, session.DefaultTimeout, false); verdict != types.VerdictLive {
		q.Put(types.ProgressCodeFailure)
		return "", types.NewSessionInvalidError(adapter.Name)
	}

	if err := f.store.PutRecord(opts.AccountName, opts.PlatformType, sessionRef, opts.UpdateMode, opts.RecordID); err != nil {
		q.Put(types.ProgressCodeFailure)
		return "", err
	}

	q.Put(types.ProgressCodeSuccess)
	utils.SuccessWithPlatform(adapter.Name, fmt.Sprintf("账号 %s 登录成功: %s", opts.AccountName, sessionRef))
	return sessionRef, nil
}

// runInSession 在已打开的会话里完成扫码交互并捕获存储状态
func (f *Flow) runInSession(ctx context.Context, adapter *platform.Adapter, sess *browser.Session, q *progress.Queue) ([]byte, error) {
	page := sess.Page()

	if _, err := page.Goto(adapter.LoginEntry, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, types.NewNetworkError(adapter.Name, fmt.Errorf("打开登录页失败: %w", err))
	}
	originalURL := page.URL()

	// 先挂监听再提二维码，避免扫得太快漏掉跳转
	navigated := watchNavigation(page, originalURL)

	if adapter.QRExtract != nil {
		src, err := adapter.QRExtract(page)
		if err != nil {
			return nil, types.NewElementNotFoundError(adapter.Name, fmt.Errorf("提取二维码失败: %w", err))
		}
		if src != "" {
			q.Put(src)
			utils.InfoWithPlatform(adapter.Name, "二维码已推送，等待扫码")
		}
	}

	if err := awaitNavigation(ctx, navigated, NavigationTimeout); err != nil {
		utils.WarnWithPlatform(adapter.Name, "等待页面跳转超时")
		return nil, types.NewTimeoutError(adapter.Name, err)
	}
	utils.InfoWithPlatform(adapter.Name, "监听页面跳转成功")

	snapshot, err := sess.CaptureState()
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// watchNavigation 监听主框架跳转，URL第一次偏离originalURL时关闭返回的通道。
// 单发信号，后续跳转不再触发。
func watchNavigation(page playwright.Page, originalURL string) <-chan struct{} {
	navigated := make(chan struct{})
	var once sync.Once
	var handler func(playwright.Frame)
	handler = func(frame playwright.Frame) {
		if frame != page.MainFrame() {
			return
		}
		if page.URL() == originalURL {
			return
		}
		once.Do(func() {
			close(navigated)
			page.RemoveListener("framenavigated", handler)
		})
	}
	page.On("framenavigated", handler)
	return navigated
}

// awaitNavigation 等待跳转信号，超时或上下文取消返回错误
func awaitNavigation(ctx context.Context, navigated <-chan struct{}, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-navigated:
		return nil
	case <-timer.C:
		return fmt.Errorf("等待页面跳转超过 %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
