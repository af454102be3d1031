package handlers_test

import (
	"fmt"
	"testing"

	"election-management-backend/database"
	"election-management-backend/handlers"
	"election-management-backend/repository"
	"election-management-backend/routes"
	"election-management-backend/service"
	"election-management-backend/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SetupTestEnvironment sets up the Gin router and an in-memory SQLite
// database for testing.
func SetupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Uniquely named in-memory database per test environment
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.InitDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	wsHub := websocket.NewHub()
	go wsHub.Run()

	electionRepo := repository.NewElectionRepository(db)
	voterRepo := repository.NewVoterRepository(db)

	electionService := service.NewElectionService(electionRepo, nil, nil)
	voterService := service.NewVoterService(voterRepo, nil)
	votingService := service.NewVotingService(db, electionRepo, voterRepo, wsHub, nil)

	router := routes.SetupRouter(&routes.Handlers{
		Elections: handlers.NewElectionHandler(electionService),
		Voters:    handlers.NewVoterHandler(voterService),
		Votes:     handlers.NewVoteHandler(votingService, electionService),
		Health:    handlers.NewHealthHandler(db),
		SSE:       handlers.NewSSEHandler(wsHub, electionService),
		WS:        websocket.NewHandler(wsHub),
	})

	return router, db
}
