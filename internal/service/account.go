package service

import (
	"context"
	"fmt"

	"Fpublisher/internal/browser"
	"Fpublisher/internal/config"
	"Fpublisher/internal/database"
	"Fpublisher/internal/login"
	"Fpublisher/internal/platform"
	"Fpublisher/internal/platform/bilibili"
	"Fpublisher/internal/progress"
	"Fpublisher/internal/publish"
	"Fpublisher/internal/session"
	"Fpublisher/internal/store"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"
)

// AccountService 账号管理与发布入口，组合底层的存储、校验、登录与发布能力
type AccountService struct {
	store     *store.Store
	launcher  *browser.Launcher
	validator *session.Validator
	loginFlow *login.Flow
	publisher *publish.Orchestrator
}

func NewAccountService(s *store.Store) *AccountService {
	launcher := browser.NewLauncher()
	validator := session.NewValidator(launcher, s)
	return &AccountService{
		store:     s,
		launcher:  launcher,
		validator: validator,
		loginFlow: login.NewFlow(launcher, s, validator),
		publisher: publish.NewOrchestrator(launcher, s),
	}
}

func (s *AccountService) GetAccounts(ctx context.Context) ([]database.Account, error) {
	return s.store.ListAccounts()
}

func (s *AccountService) GetAccountByID(ctx context.Context, id int) (*database.Account, error) {
	return s.store.GetAccount(id)
}

// ValidateAccount 校验账号登录态并回写status字段。
// B站优先走导航接口快速验证，不必开浏览器；
// preview为true时强制有头校验并短暂保留窗口供人工确认。
func (s *AccountService) ValidateAccount(ctx context.Context, id int, preview bool) (bool, error) {
	account, err := s.store.GetAccount(id)
	if err != nil {
		return false, err
	}

	adapter, err := platform.Get(account.Type)
	if err != nil {
		return false, err
	}

	valid, err := s.checkSession(ctx, adapter, account, preview)
	if err != nil {
		return false, err
	}

	status := config.AccountStatusInvalid
	if valid {
		status = config.AccountStatusValid
	}
	if err := s.store.MarkStatus(account.ID, status); err != nil {
		return valid, err
	}
	return valid, nil
}

func (s *AccountService) checkSession(ctx context.Context, adapter *platform.Adapter, account *database.Account, preview bool) (bool, error) {
	if !preview && account.Type == config.PlatformTypeBilibili {
		snapshot, err := s.store.Get(account.FilePath)
		if err != nil {
			return false, err
		}
		valid, uname, err := bilibili.ValidateSnapshotAPI(snapshot)
		if err == nil {
			if valid && uname != "" && uname != account.UserName {
				utils.InfoWithPlatform(adapter.Name, fmt.Sprintf("账号昵称已变更: %s -> %s", account.UserName, uname))
			}
			return valid, nil
		}
		// 接口请求异常时退回浏览器校验
		utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("接口校验失败，回退浏览器校验: %v", err))
	}

	verdict := s.validator.Validate(ctx, adapter, account.FilePath, session.DefaultTimeout, preview)
	return verdict == types.VerdictLive, nil
}

// LoginAccount 发起扫码登录，进度消息推送到q，成功返回新快照标识
func (s *AccountService) LoginAccount(ctx context.Context, opts login.Options, q *progress.Queue) (string, error) {
	return s.loginFlow.Run(ctx, opts, q)
}

// ReloginAccount 对已有记录重新登录，复用原记录行
func (s *AccountService) ReloginAccount(ctx context.Context, id int, q *progress.Queue) (string, error) {
	account, err := s.store.GetAccount(id)
	if err != nil {
		return "", err
	}
	return s.loginFlow.Run(ctx, login.Options{
		AccountName:  account.UserName,
		PlatformType: account.Type,
		UpdateMode:   true,
		RecordID:     account.ID,
	}, q)
}

// PublishVideo 对指定账号执行一次发布。
// 发布阶段检出登录失效时将账号状态标记为无效。
func (s *AccountService) PublishVideo(ctx context.Context, recordID int, pkg *types.ContentPackage, q *progress.Queue) (types.Outcome, error) {
	account, err := s.store.GetAccount(recordID)
	if err != nil {
		return types.Outcome{}, err
	}

	adapter, err := platform.Get(account.Type)
	if err != nil {
		return types.Outcome{}, err
	}

	outcome := s.publisher.Run(ctx, adapter, account.FilePath, pkg, q)
	if !outcome.Success && outcome.Cause == types.CauseSessionInvalid {
		if err := s.store.MarkStatus(account.ID, config.AccountStatusInvalid); err != nil {
			utils.WarnWithPlatform(adapter.Name, fmt.Sprintf("更新账号状态失败: %v", err))
		}
	}
	return outcome, nil
}
