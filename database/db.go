package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"election-management-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDSN 默认使用共享的内存数据库：状态只在进程生命周期内存在，
// 不提供持久化保证，但保留真实的事务语义供投票账本使用
const DefaultDSN = "file::memory:?cache=shared"

// InitDB 初始化数据库连接并迁移模型。
// 返回显式构造的句柄而不是设置全局变量，测试可以各自持有独立的数据库。
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	// 配置GORM日志
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %v", err)
	}

	// 自动迁移模型
	if err := db.AutoMigrate(&models.Election{}, &models.Candidate{}, &models.Voter{}); err != nil {
		return nil, fmt.Errorf("迁移模型失败: %v", err)
	}

	log.Println("数据库连接和迁移成功")
	return db, nil
}

// CloseDB 关闭底层数据库连接
func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("获取底层数据库连接失败: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("关闭数据库连接失败: %v", err)
		return
	}
	log.Println("数据库连接已关闭")
}
