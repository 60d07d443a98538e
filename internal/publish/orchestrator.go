// Package publish 实现单次发布运行的状态机编排：
// 打开快照上下文、上传视频、填写元数据、等待处理完成、点击发布。
// 各阶段严格顺序执行，任一阶段失败进入终态并带上阶段与原因。
package publish

import (
	"context"
	"fmt"
	"time"

	"Fpublisher/internal/browser"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/progress"
	"Fpublisher/internal/resolver"
	"Fpublisher/internal/session"
	"Fpublisher/internal/store"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	// 处理状态轮询参数：1秒间隔，最多180次，连续3次稳定完成才放行
	pollInterval  = 1 * time.Second
	pollAttempts  = 180
	stableTicks   = 3
	navTimeout    = 30 * time.Second
	tagTypeDelay  = 200 * time.Millisecond
	tagAffirmWait = 500 * time.Millisecond
)

type Orchestrator struct {
	launcher *browser.Launcher
	store    *store.Store
}

func NewOrchestrator(launcher *browser.Launcher, s *store.Store) *Orchestrator {
	return &Orchestrator{launcher: launcher, store: s}
}

// Run 执行一次发布。终态通过返回值描述，进度通道只收到一条终态码。
// 浏览器资源在所有返回路径上都会被关闭。
func (o *Orchestrator) Run(ctx context.Context, adapter *platform.Adapter, sessionRef string, pkg *types.ContentPackage, q *progress.Queue) types.Outcome {
	outcome := o.run(ctx, adapter, sessionRef, pkg)
	if q != nil {
		if outcome.Success {
			q.Put(types.ProgressCodeSuccess)
		} else {
			q.Put(types.ProgressCodeFailure)
		}
	}
	return outcome
}

func (o *Orchestrator) run(ctx context.Context, adapter *platform.Adapter, sessionRef string, pkg *types.ContentPackage) types.Outcome {
	failed := func(phase types.Phase, cause string) types.Outcome {
		utils.ErrorWithPlatform(adapter.Name, fmt.Sprintf("发布失败: phase=%s cause=%s", phase, cause))
		return types.Outcome{Success: false, Phase: phase, Cause: cause}
	}

	// ---------- Init ----------
	instance, err := o.launcher.Launch()
	if err != nil {
		utils.ErrorWithPlatform(adapter.Name, fmt.Sprintf("启动浏览器失败: %v", err))
		return failed(types.PhaseInit, types.CauseNavigationExhausted)
	}

	sess, err := instance.NewSession(adapter.Name, o.store.SnapshotPath(sessionRef))
	if err != nil {
		instance.Close()
		utils.ErrorWithPlatform(adapter.Name, fmt.Sprintf("创建上下文失败: %v", err))
		return failed(types.PhaseInit, types.CauseNavigationExhausted)
	}
	defer sess.Teardown()

	page := sess.Page()
	if !o.openUploadPage(page, adapter) {
		return failed(types.PhaseInit, types.CauseNavigationExhausted)
	}

	// ---------- UploadingMedia ----------
	utils.InfoWithPlatform(adapter.Name, fmt.Sprintf("正在上传视频: %s", pkg.VideoPath))
	fileInput, err := resolver.Resolve(page, adapter.FileInput)
	if err != nil {
		// 找不到上传入口时先区分是掉登录还是页面改版
		if session.HasLoginMarkers(page, adapter.LoginMarkers) {
			return failed(types.PhaseUploadingMedia, types.CauseSessionInvalid)
		}
		utils.Screenshot(page, adapter.Name+"_upload_input_missing")
		return failed(types.PhaseUploadingMedia, types.CauseInputNotFound)
	}
	if err := fileInput.SetInputFiles(pkg.VideoPath); err != nil {
		utils.ErrorWithPlatform(adapter.Name, fmt.Sprintf("设置视频文件失败: %v", err))
		return failed(types.PhaseUploadingMedia, types.CauseInputNotFound)
	}

	// ---------- FillingMetadata ----------
	degraded := o.fillMetadata(page, adapter, pkg)

	// ---------- AwaitingProcessing ----------
	utils.InfoWithPlatform(adapter.Name, "等待视频处理完成")
	stable := waitStable(ctx, pollAttempts, pollInterval, stableTicks, func() (bool, bool) {
		inProgress := signalHit(page, adapter.Signals.InProgress)
		complete := signalHit(page, adapter.Signals.Complete)
		return inProgress, complete
	})
	if !stable {
		if adapter.ProcessingTimeoutFatal {
			return failed(types.PhaseAwaitingProcessing, types.CauseTimeout)
		}
		// 部分平台转码期间也能投稿，超时只警告
		utils.WarnWithPlatform(adapter.Name, "等待处理完成超时，继续尝试发布")
	}

	// ---------- Publishing ----------
	if adapter.PublishGrace > 0 {
		time.Sleep(adapter.PublishGrace)
	}
	control, err := resolver.Resolve(page, adapter.PublishControl)
	if err != nil {
		utils.Screenshot(page, adapter.Name+"_publish_button_missing")
		return failed(types.PhasePublishing, types.CauseButtonNotFound)
	}
	if err := control.Click(); err != nil {
		utils.ErrorWithPlatform(adapter.Name, fmt.Sprintf("点击发布按钮失败: %v", err))
		return failed(types.PhasePublishing, types.CauseButtonNotFound)
	}
	utils.SuccessWithPlatform(adapter.Name, "视频发布完成")

	// ---------- Done ----------
	// 平台可能在发布后轮换会话令牌，回写快照保持登录态新鲜
	time.Sleep(2 * time.Second)
	if snapshot, err := sess.CaptureState(); err == nil {
		if err := o.store.WriteSnapshot(sessionRef, snapshot); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("回写快照失败: %v", err))
		}
	} else {
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("捕获会话状态失败: %v", err))
	}

	return types.Outcome{Success: true, Phase: types.PhaseDone, ScheduleDegraded: degraded}
}

// openUploadPage 按顺序尝试上传入口URL，全部失败返回false
func (o *Orchestrator) openUploadPage(page playwright.Page, adapter *platform.Adapter) bool {
	for _, entry := range adapter.UploadEntries {
		_, err := page.Goto(entry, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(navTimeout.Milliseconds())),
		})
		if err == nil {
			utils.InfoWithPlatform(adapter.Name, fmt.Sprintf("已打开上传页面: %s", entry))
			return true
		}
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("打开上传页面失败: %s: %v", entry, err))
	}
	return false
}

// fillMetadata 填写标题、标签、简介等元数据。
// 除文件输入外所有字段尽力而为：缺失记日志跳过，不终止运行。
// 返回定时发布设置是否降级。
func (o *Orchestrator) fillMetadata(page playwright.Page, adapter *platform.Adapter, pkg *types.ContentPackage) bool {
	title := pkg.Title
	if adapter.TitleMaxLen > 0 {
		title = pkg.TruncateTitle(adapter.TitleMaxLen)
	}

	if loc, err := resolver.Resolve(page, adapter.FieldCandidates(platform.FieldTitle)); err == nil {
		if err := loc.Fill(title); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("填写标题失败: %v", err))
		}
	} else {
		// 标题控件缺失不致命，平台可能接受无标题确认的发布
		utils.WarnWithPlatform(adapter.Name, "未找到标题输入框，跳过标题填写")
	}

	if len(pkg.Tags) > 0 {
		o.fillTags(page, adapter, pkg.Tags)
	}

	if pkg.Description != "" {
		if loc, err := resolver.Resolve(page, adapter.FieldCandidates(platform.FieldDescription)); err == nil {
			if err := loc.Fill(pkg.Description); err != nil {
				utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("填写简介失败: %v", err))
			}
		} else {
			utils.WarnWithPlatform(adapter.Name, "未找到简介输入区，跳过简介填写")
		}
	}

	if adapter.ExtraSetter != nil {
		for key, value := range pkg.Extra {
			if err := adapter.ExtraSetter(page, key, value); err != nil {
				utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("设置附加字段 %s 失败: %v", key, err))
			}
		}
	}

	// 定时发布失败降级为立即发布，偏差上报给调用方而非静默吞掉
	if pkg.ScheduleTime != nil {
		if adapter.ScheduleSetter == nil {
			utils.WarnWithPlatform(adapter.Name, "平台不支持定时发布，降级为立即发布")
			return true
		}
		if err := adapter.ScheduleSetter(page, *pkg.ScheduleTime); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("设置定时发布失败，降级为立即发布: %v", err))
			return true
		}
		utils.InfoWithPlatform(adapter.Name, fmt.Sprintf("已设置定时发布: %s", pkg.ScheduleTime.Format("2006-01-02 15:04")))
	}
	return false
}

// fillTags 逐个输入标签并按确认键，带间隔防止输入事件丢失
func (o *Orchestrator) fillTags(page playwright.Page, adapter *platform.Adapter, tags []string) {
	loc, err := resolver.Resolve(page, adapter.FieldCandidates(platform.FieldTags))
	if err != nil {
		utils.WarnWithPlatform(adapter.Name, "未找到标签输入框，跳过标签填写")
		return
	}
	if err := loc.Click(); err != nil {
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("聚焦标签输入框失败: %v", err))
		return
	}
	affirm := adapter.TagAffirmKey
	if affirm == "" {
		affirm = "Enter"
	}
	for _, tag := range tags {
		if err := page.Keyboard().Type("#"+tag, playwright.KeyboardTypeOptions{
			Delay: playwright.Float(20),
		}); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("输入标签 %s 失败: %v", tag, err))
			continue
		}
		time.Sleep(tagTypeDelay)
		if err := page.Keyboard().Press(affirm); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("确认标签 %s 失败: %v", tag, err))
		}
		time.Sleep(tagAffirmWait)
	}
	utils.InfoWithPlatform(adapter.Name, fmt.Sprintf("已添加 %d 个标签", len(tags)))
}

// signalHit 任一候选命中即为真，查询异常按未命中处理
func signalHit(page playwright.Page, candidates []resolver.Candidate) bool {
	for _, c := range candidates {
		count, err := c.Build(page).Count()
		if err != nil {
			continue
		}
		if count > 0 {
			return true
		}
	}
	return false
}

// waitStable 以固定间隔轮询处理状态，直到连续needed次"完成且不在进行中"
// 或尝试次数耗尽。孤立的完成信号会被进行中信号清零，过滤UI抖动。
func waitStable(ctx context.Context, attempts int, interval time.Duration, needed int, probe func() (inProgress, complete bool)) bool {
	streak := 0
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		inProgress, complete := probe()
		if complete && !inProgress {
			streak++
			if streak >= needed {
				return true
			}
		} else {
			streak = 0
		}

		if i < attempts-1 {
			time.Sleep(interval)
		}
	}
	return false
}
