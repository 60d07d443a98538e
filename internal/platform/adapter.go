// Package platform 定义各平台适配器。
// 登录流程、会话校验和发布编排只写一次，平台差异全部收敛在Adapter里：
// 适配器只提供数据（入口URL、候选选择器、状态标记）和少量钩子，不含控制流。
package platform

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"Fpublisher/internal/resolver"

	"github.com/playwright-community/playwright-go"
)

// Field 发布表单的逻辑字段名
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldCategory    Field = "category"
)

// StatusSignals 上传处理状态探测信号。
// 进行中与完成是两路独立信号，完成判定要求 complete 为真且 inProgress 为假。
type StatusSignals struct {
	InProgress []resolver.Candidate
	Complete   []resolver.Candidate
}

// Adapter 平台能力配置
type Adapter struct {
	Name string
	Type int // 平台类型编号 1..5

	// 登录
	LoginEntry string                                       // 登录入口URL
	QRExtract  func(page playwright.Page) (string, error)   // 提取二维码图片数据，含平台特定的点击序列

	// 会话校验
	ValidateURL       string               // 需要登录态才能正常渲染的页面
	ValidateExpectURL string               // 期望落地的URL模式，空表示不做URL等待
	LoginDomain       string               // 平台专用登录域名片段，落地URL包含它即判失效
	LoginMarkers      []resolver.Candidate // 登录提示标记（扫码提示文案、密码输入框等）

	// 发布
	UploadEntries  []string                            // 上传入口URL，按顺序尝试
	FileInput      []resolver.Candidate                // 视频文件输入框候选
	Fields         map[Field][]resolver.Candidate      // 元数据字段候选
	TitleMaxLen    int                                 // 标题字符上限
	TagAffirmKey   string                              // 每个标签输入后的确认按键
	Signals        StatusSignals                       // 处理状态信号
	PublishControl []resolver.Candidate                // 发布按钮候选
	PublishGrace   time.Duration                       // 点击发布前的固定等待
	// ProcessingTimeoutFatal 处理等待耗尽后是否终止运行；
	// 为false的平台允许带警告继续进入发布阶段
	ProcessingTimeoutFatal bool

	// 可选钩子
	ScheduleSetter func(page playwright.Page, t time.Time) error      // 定时发布控件操作
	ExtraSetter    func(page playwright.Page, key, value string) error // 平台特定可选字段
}

// FieldCandidates 返回指定字段的候选列表，未配置的字段返回nil
func (a *Adapter) FieldCandidates(field Field) []resolver.Candidate {
	if a.Fields == nil {
		return nil
	}
	return a.Fields[field]
}

var (
	registryMu sync.RWMutex
	registry   = map[int]*Adapter{}
)

// Register 注册平台适配器，各平台包在init中调用
func Register(a *Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[a.Type] = a
}

// Get 按平台类型编号取适配器
func Get(platformType int) (*Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[platformType]
	if !ok {
		return nil, fmt.Errorf("未知的平台类型: %d", platformType)
	}
	return a, nil
}

// Types 返回已注册的平台类型编号，升序
func Types() []int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]int, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Ints(types)
	return types
}
