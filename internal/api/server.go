// Package api 对外提供HTTP接口：账号管理、扫码登录SSE流与发布触发。
package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"Fpublisher/internal/login"
	"Fpublisher/internal/progress"
	"Fpublisher/internal/service"
	"Fpublisher/internal/types"
	"Fpublisher/internal/utils"

	"github.com/gin-gonic/gin"
)

type Server struct {
	accounts *service.AccountService
	engine   *gin.Engine
}

func NewServer(accounts *service.AccountService, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		accounts: accounts,
		engine:   gin.Default(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.engine

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/accounts", s.listAccounts)
	r.POST("/accounts/:id/validate", s.validateAccount)
	r.GET("/login", s.loginStream)
	r.POST("/upload", s.publishVideo)
}

// Run 启动HTTP服务
func (s *Server) Run(addr string) error {
	utils.Info(fmt.Sprintf("[+] HTTP服务启动: %s", addr))
	return s.engine.Run(addr)
}

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := s.accounts.GetAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询账号列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": accounts})
}

func (s *Server) validateAccount(c *gin.Context) {
	var uri struct {
		ID int `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的账号ID"})
		return
	}

	valid, err := s.accounts.ValidateAccount(c.Request.Context(), uri.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "valid": valid})
}

// loginStream 扫码登录接口，以SSE流推送二维码与终态码。
// 第一条消息是二维码图片数据，最后一条是"200"或"500"。
func (s *Server) loginStream(c *gin.Context) {
	var query struct {
		Type       int    `form:"type" binding:"required"`
		ID         string `form:"id" binding:"required"`
		UpdateMode bool   `form:"update_mode"`
		RecordID   int    `form:"record_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少type或id参数"})
		return
	}

	q := progress.NewQueue()
	go func() {
		defer q.Close()
		_, err := s.accounts.LoginAccount(c.Request.Context(), login.Options{
			AccountName:  query.ID,
			PlatformType: query.Type,
			UpdateMode:   query.UpdateMode,
			RecordID:     query.RecordID,
		}, q)
		if err != nil {
			utils.Warn(fmt.Sprintf("[-] 登录失败: %v", err))
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// 逐条转发进度消息，终态码后队列关闭、流结束
	c.Stream(func(w io.Writer) bool {
		msg, ok := q.Get()
		if !ok {
			return false
		}
		c.SSEvent("message", msg)
		return msg != types.ProgressCodeSuccess && msg != types.ProgressCodeFailure
	})
}

type publishRequest struct {
	RecordID    int      `json:"record_id" binding:"required"`
	VideoPath   string   `json:"video_path" binding:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	// ScheduleTime 定时发布时间，格式 2006-01-02 15:04，空表示立即发布
	ScheduleTime string            `json:"schedule_time"`
	Extra        map[string]string `json:"extra"`
}

func (s *Server) publishVideo(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的发布参数"})
		return
	}

	pkg := &types.ContentPackage{
		VideoPath:   req.VideoPath,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Extra:       req.Extra,
	}
	if req.ScheduleTime != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", req.ScheduleTime, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "定时发布时间格式应为 2006-01-02 15:04"})
			return
		}
		pkg.ScheduleTime = &t
	}

	outcome, err := s.accounts.PublishVideo(c.Request.Context(), req.RecordID, pkg, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if outcome.Success {
		c.JSON(http.StatusOK, gin.H{
			"code":              200,
			"schedule_degraded": outcome.ScheduleDegraded,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":  500,
		"phase": string(outcome.Phase),
		"cause": outcome.Cause,
	})
}
