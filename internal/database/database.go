package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Account 账号登记表，对应 user_info 表。
// 一行绑定一个发布账号与其当前会话快照及有效性状态。
type Account struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Type     int    `gorm:"column:type" json:"type"`         // 平台类型编号 1..5
	FilePath string `gorm:"column:filePath" json:"filePath"` // 会话快照文件名（sessionRef）
	UserName string `gorm:"column:userName" json:"userName"` // 账号显示名
	Status   int    `gorm:"column:status" json:"status"`     // 0=未验证/已失效 1=有效
}

func (Account) TableName() string {
	return "user_info"
}

// Init 打开sqlite数据库并建表
func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}

	if err := db.AutoMigrate(&Account{}); err != nil {
		return nil, fmt.Errorf("migrate database failed: %w", err)
	}

	return db, nil
}
