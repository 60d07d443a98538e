package types

// Phase 发布状态机阶段
type Phase string

const (
	PhaseInit               Phase = "init"
	PhaseUploadingMedia     Phase = "uploading_media"
	PhaseFillingMetadata    Phase = "filling_metadata"
	PhaseAwaitingProcessing Phase = "awaiting_processing"
	PhasePublishing         Phase = "publishing"
	PhaseDone               Phase = "done"
)

// Verdict 会话校验结论
type Verdict int

const (
	VerdictExpired Verdict = iota
	VerdictLive
)

func (v Verdict) String() string {
	if v == VerdictLive {
		return "live"
	}
	return "expired"
}

// Outcome 一次运行的终态
type Outcome struct {
	Success bool
	Phase   Phase  // 失败时所处阶段
	Cause   string // 失败原因标识
	// ScheduleDegraded 表示定时发布设置失败、已降级为立即发布
	ScheduleDegraded bool
}

// 失败原因标识
const (
	CauseNavigationExhausted = "navigation_exhausted"
	CauseSessionInvalid      = "session_invalid"
	CauseInputNotFound       = "input_not_found"
	CauseButtonNotFound      = "button_not_found"
	CauseTimeout             = "timeout"
)

// 进度通道上的终态消息，与前端约定的状态码保持一致
const (
	ProgressCodeSuccess = "200"
	ProgressCodeFailure = "500"
)
