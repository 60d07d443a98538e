// Package store 管理会话快照文件与账号登记表。
// 快照以v1时间序UUID命名，保证按创建时间排序且并发登录不冲突；
// 登记表写入为单语句提交，同一record_id的并发登录以最后提交者为准。
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"Fpublisher/internal/database"
	"Fpublisher/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound 快照文件不存在
var ErrNotFound = os.ErrNotExist

type Store struct {
	db         *gorm.DB
	cookiePath string
}

func New(db *gorm.DB, cookiePath string) *Store {
	return &Store{db: db, cookiePath: cookiePath}
}

// NewSessionRef 生成新的快照标识（v1 UUID，时间有序）
func NewSessionRef() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generate session ref failed: %w", err)
	}
	return fmt.Sprintf("%s.json", id), nil
}

// SnapshotPath 返回快照文件的绝对路径
func (s *Store) SnapshotPath(sessionRef string) string {
	return filepath.Join(s.cookiePath, sessionRef)
}

// Put 写入新快照并插入或更新账号记录，返回快照标识。
// updateMode为true且recordID>0时覆盖已有行，否则追加新行。
func (s *Store) Put(userName string, platformType int, snapshot []byte, updateMode bool, recordID int) (string, error) {
	sessionRef, err := NewSessionRef()
	if err != nil {
		return "", err
	}

	if err := s.WriteSnapshot(sessionRef, snapshot); err != nil {
		return "", err
	}

	if err := s.PutRecord(userName, platformType, sessionRef, updateMode, recordID); err != nil {
		return "", err
	}
	return sessionRef, nil
}

// PutRecord 插入或更新账号记录。更新走单语句提交，无乐观并发检查：
// 同一recordID的并发登录以最后提交者为准。
func (s *Store) PutRecord(userName string, platformType int, sessionRef string, updateMode bool, recordID int) error {
	if updateMode && recordID > 0 {
		result := s.db.Model(&database.Account{}).Where("id = ?", recordID).
			Updates(map[string]interface{}{
				"type":     platformType,
				"filePath": sessionRef,
				"userName": userName,
				"status":   1,
			})
		if result.Error != nil {
			return fmt.Errorf("update account failed: %w", result.Error)
		}
	} else {
		account := database.Account{
			Type:     platformType,
			FilePath: sessionRef,
			UserName: userName,
			Status:   1,
		}
		if err := s.db.Create(&account).Error; err != nil {
			return fmt.Errorf("create account failed: %w", err)
		}
	}

	utils.Info(fmt.Sprintf("[+] 用户状态已记录: %s -> %s", userName, sessionRef))
	return nil
}

// Get 读取快照内容，文件不存在时返回ErrNotFound
func (s *Store) Get(sessionRef string) ([]byte, error) {
	data, err := os.ReadFile(s.SnapshotPath(sessionRef))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot %s: %w", sessionRef, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

// WriteSnapshot 将快照内容写到指定标识下（新建或覆盖刷新）
func (s *Store) WriteSnapshot(sessionRef string, snapshot []byte) error {
	if err := os.MkdirAll(s.cookiePath, 0755); err != nil {
		return fmt.Errorf("create cookie directory failed: %w", err)
	}
	if err := os.WriteFile(s.SnapshotPath(sessionRef), snapshot, 0644); err != nil {
		return fmt.Errorf("write snapshot failed: %w", err)
	}
	return nil
}

// MarkStatus 更新账号有效性状态
func (s *Store) MarkStatus(recordID int, status int) error {
	result := s.db.Model(&database.Account{}).Where("id = ?", recordID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update account status failed: %w", result.Error)
	}
	return nil
}

// GetAccount 按ID查询账号记录
func (s *Store) GetAccount(recordID int) (*database.Account, error) {
	var account database.Account
	if err := s.db.First(&account, recordID).Error; err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}
	return &account, nil
}

// ListAccounts 查询全部账号记录
func (s *Store) ListAccounts() ([]database.Account, error) {
	var accounts []database.Account
	if err := s.db.Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("query accounts failed: %w", err)
	}
	return accounts, nil
}

// DB 返回底层数据库句柄
func (s *Store) DB() *gorm.DB {
	return s.db
}
