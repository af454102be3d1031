package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"election-management-backend/cache"
	"election-management-backend/database"
	"election-management-backend/handlers"
	"election-management-backend/repository"
	"election-management-backend/routes"
	"election-management-backend/service"
	"election-management-backend/websocket"

	"github.com/joho/godotenv"
)

func main() {
	// 加载.env配置（不存在时使用环境变量与默认值）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到.env文件，使用环境变量")
	}

	// 初始化Redis（不可用时自动进入模拟模式，限流退化为进程内实现）
	if err := cache.InitRedis(); err != nil {
		log.Printf("初始化Redis失败: %v", err)
	}

	// 初始化数据库连接
	db, err := database.InitDB(os.Getenv("DB_DSN"))
	if err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}

	// 添加一些示例数据（仅在开发模式下）
	if getEnv("ENVIRONMENT", "development") == "development" {
		database.SeedSampleData(db)
	}

	// 初始化WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// 初始化数据仓库
	electionRepo := repository.NewElectionRepository(db)
	voterRepo := repository.NewVoterRepository(db)

	// 初始化服务
	electionService := service.NewElectionService(electionRepo, nil, nil)
	voterService := service.NewVoterService(voterRepo, nil)
	votingService := service.NewVotingService(db, electionRepo, voterRepo, wsHub, nil)

	// 初始化处理器并注册路由
	router := routes.SetupRouter(&routes.Handlers{
		Elections: handlers.NewElectionHandler(electionService),
		Voters:    handlers.NewVoterHandler(voterService),
		Votes:     handlers.NewVoteHandler(votingService, electionService),
		Health:    handlers.NewHealthHandler(db),
		SSE:       handlers.NewSSEHandler(wsHub, electionService),
		WS:        websocket.NewHandler(wsHub),
	})

	// 启动HTTP服务器
	srv := routes.StartServer(router)

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("关闭服务器...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 不接受新请求并等待现有请求完成
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器强制关闭: %v", err)
	}

	// 关闭数据库和Redis连接
	database.CloseDB(db)
	cache.CloseRedis()

	log.Println("服务器优雅关闭")
}

// getEnv 获取环境变量值或使用默认值
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
