package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"Fpublisher/internal/api"
	"Fpublisher/internal/config"
	"Fpublisher/internal/database"
	"Fpublisher/internal/login"
	_ "Fpublisher/internal/platform/all"
	"Fpublisher/internal/progress"
	"Fpublisher/internal/service"
	"Fpublisher/internal/store"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"
	"Fpublisher/internal/utils/schedule"
)

func main() {
	var (
		serve        = flag.Bool("serve", false, "启动HTTP服务")
		platformType = flag.Int("platform", 0, "平台类型: 1=小红书 2=视频号 3=抖音 4=快手 5=B站")
		account      = flag.String("account", "", "账号名称")
		doLogin      = flag.Bool("login", false, "执行扫码登录")
		recordID     = flag.Int("record", 0, "账号记录ID")
		update       = flag.Bool("update", false, "登录时覆盖已有记录（配合 -record）")
		validate     = flag.Int("validate", 0, "校验指定记录ID的登录态")
		preview      = flag.Bool("preview", false, "校验时打开可见浏览器窗口供人工确认")
		video        = flag.String("video", "", "视频文件路径")
		title        = flag.String("title", "", "视频标题，为空时读取同名txt伴随文件")
		desc         = flag.String("desc", "", "视频简介")
		tags         = flag.String("tags", "", "标签，逗号分隔")
		scheduleAt   = flag.String("schedule", "", "定时发布时间，格式 2006-01-02 15:04")
	)
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Init(config.GetDbPath())
	if err != nil {
		utils.Error(fmt.Sprintf("[-] 初始化数据库失败: %v", err))
		os.Exit(1)
	}

	accounts := service.NewAccountService(store.New(db, config.Config.CookiePath))
	ctx := context.Background()

	switch {
	case *serve:
		server := api.NewServer(accounts, config.Config.DebugMode)
		if err := server.Run(config.Config.ListenAddr); err != nil {
			utils.Error(fmt.Sprintf("[-] HTTP服务退出: %v", err))
			os.Exit(1)
		}

	case *validate > 0:
		valid, err := accounts.ValidateAccount(ctx, *validate, *preview)
		if err != nil {
			utils.Error(fmt.Sprintf("[-] 校验失败: %v", err))
			os.Exit(1)
		}
		fmt.Printf("记录 %d 登录态: %v\n", *validate, valid)

	case *doLogin:
		if *platformType == 0 || *account == "" {
			fmt.Fprintln(os.Stderr, "登录需要 -platform 和 -account 参数")
			os.Exit(1)
		}
		runLogin(ctx, accounts, *platformType, *account, *update, *recordID)

	case *video != "":
		if *recordID == 0 {
			fmt.Fprintln(os.Stderr, "发布需要 -record 参数")
			os.Exit(1)
		}
		runPublish(ctx, accounts, *recordID, *video, *title, *desc, *tags, *scheduleAt)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

// runLogin 前台扫码登录，边等边把进度消息打到终端
func runLogin(ctx context.Context, accounts *service.AccountService, platformType int, account string, update bool, recordID int) {
	q := progress.NewQueue()
	done := make(chan error, 1)
	go func() {
		_, err := accounts.LoginAccount(ctx, login.Options{
			AccountName:  account,
			PlatformType: platformType,
			UpdateMode:   update,
			RecordID:     recordID,
		}, q)
		q.Close()
		done <- err
	}()

	for {
		msg, ok := q.Get()
		if !ok {
			break
		}
		switch msg {
		case types.ProgressCodeSuccess:
			fmt.Println("登录成功")
		case types.ProgressCodeFailure:
			fmt.Println("登录失败")
		default:
			fmt.Println("请扫描二维码登录（浏览器窗口中已展示）")
		}
	}

	if err := <-done; err != nil {
		os.Exit(1)
	}
}

func runPublish(ctx context.Context, accounts *service.AccountService, recordID int, video, title, desc, tags, scheduleAt string) {
	pkg := &types.ContentPackage{
		VideoPath:   video,
		Title:       title,
		Description: desc,
	}

	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				pkg.Tags = append(pkg.Tags, tag)
			}
		}
	}

	// 未给标题时尝试视频同名txt伴随文件
	if pkg.Title == "" {
		if t, hashtags, err := schedule.TitleAndHashtags(video); err == nil {
			pkg.Title = t
			if len(pkg.Tags) == 0 {
				pkg.Tags = hashtags
			}
		}
	}

	if scheduleAt != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", scheduleAt, time.Local)
		if err != nil {
			fmt.Fprintln(os.Stderr, "定时发布时间格式应为 2006-01-02 15:04")
			os.Exit(1)
		}
		pkg.ScheduleTime = &t
	}

	// 发布前校验登录态，失效时先走一次重新扫码
	valid, err := accounts.ValidateAccount(ctx, recordID, false)
	if err != nil {
		utils.Error(fmt.Sprintf("[-] 校验登录态失败: %v", err))
		os.Exit(1)
	}
	if !valid {
		fmt.Println("登录态已失效，请重新扫码登录")
		q := progress.NewQueue()
		go func() {
			for {
				if _, ok := q.Get(); !ok {
					return
				}
			}
		}()
		if _, err := accounts.ReloginAccount(ctx, recordID, q); err != nil {
			utils.Error(fmt.Sprintf("[-] 重新登录失败: %v", err))
			q.Close()
			os.Exit(1)
		}
		q.Close()
	}

	outcome, err := accounts.PublishVideo(ctx, recordID, pkg, nil)
	if err != nil {
		utils.Error(fmt.Sprintf("[-] 发布失败: %v", err))
		os.Exit(1)
	}
	if !outcome.Success {
		fmt.Printf("发布失败: phase=%s cause=%s\n", outcome.Phase, outcome.Cause)
		os.Exit(1)
	}
	if outcome.ScheduleDegraded {
		fmt.Println("发布成功（定时设置失败，已降级为立即发布）")
		return
	}
	fmt.Println("发布成功")
}
