package routes

import (
	"log"
	"net/http"
	"os"
	"time"

	"election-management-backend/handlers"
	"election-management-backend/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server 是HTTP服务器的封装
type Server struct {
	*http.Server
}

// Handlers 路由所需的全部处理器
type Handlers struct {
	Elections *handlers.ElectionHandler
	Voters    *handlers.VoterHandler
	Votes     *handlers.VoteHandler
	Health    *handlers.HealthHandler
	SSE       *handlers.SSEHandler
	WS        *websocket.Handler
}

// SetupRouter 设置和配置Gin路由
func SetupRouter(h *Handlers) *gin.Engine {
	router := gin.Default()

	// 配置CORS中间件
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // 生产环境中应限制为前端域名
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 初始化限流器
	handlers.InitRateLimiters()

	// 定义API路由
	api := router.Group("/api")
	{
		// 全局API限流中间件
		api.Use(handlers.RateLimitMiddleware())

		// 健康检查端点
		api.GET("/health", h.Health.HealthCheck)
		api.GET("/status", h.Health.SystemStatus)

		// 选举管理端点
		elections := api.Group("/elections")
		{
			elections.POST("", h.Elections.CreateElection)
			elections.GET("", h.Elections.ListElections)
			elections.GET("/:id", h.Elections.GetElection)
			elections.DELETE("/:id", h.Elections.DeleteElection)

			// 候选人管理
			elections.POST("/:id/candidates", h.Elections.AddCandidate)

			// 投票与结果
			elections.POST("/:id/vote", h.Votes.CastVote)
			elections.GET("/:id/results", h.Elections.GetResults)

			// 实时更新端点（WebSocket和SSE）
			elections.GET("/:id/ws", h.WS.HandleConnection)
			elections.GET("/:id/live", h.SSE.HandleSSE)
		}

		// 选民登记端点
		voters := api.Group("/voters")
		{
			voters.POST("", h.Voters.AddVoter)
			voters.GET("", h.Voters.ListVoters)
			voters.GET("/:id", h.Voters.GetVoter)
		}
	}

	return router
}

// StartServer 启动HTTP服务器
func StartServer(router *gin.Engine) *Server {
	// 从环境变量获取端口，默认为8090
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8090"
	}

	addr := ":" + port

	srv := &Server{
		&http.Server{
			Addr:    addr,
			Handler: router,
		},
	}

	// 在单独的goroutine中启动服务器
	go func() {
		log.Printf("服务器启动在 %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	return srv
}
