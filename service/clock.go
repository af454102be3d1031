package service

import (
	"time"

	"github.com/google/uuid"
)

// Clock 返回当前时间，可注入以便测试状态推导
type Clock func() time.Time

// IDGenerator 生成不透明的唯一ID
type IDGenerator func() string

// DefaultClock 使用系统时钟
func DefaultClock() time.Time {
	return time.Now()
}

// DefaultIDGenerator 使用UUID
func DefaultIDGenerator() string {
	return uuid.NewString()
}
