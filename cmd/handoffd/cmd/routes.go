package cmd

import (
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
	"github.com/handoff-labs/handoff/pkg/transfer"
	"github.com/handoff-labs/handoff/pkg/webapi"
	"github.com/handoff-labs/handoff/pkg/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
)

type RouteOpts struct {
	orchestrator *transfer.Orchestrator
	userStor     stor.UserStor
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	apikeyCache := apimiddleware.NewAPIKeyCache(opts.userStor)

	g := e.Group("/api")
	g.Use(apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		Keyname:         "apikey",
		GetUserByAPIKey: apikeyCache.GetUserByAPIKey,
	}))

	sessionController := webapi.NewSessionController(opts.orchestrator)

	g.POST("/sessions", sessionController.CreateSession)
	g.GET("/sessions/:token", sessionController.GetSession)
	g.POST("/sessions/:token/accept", sessionController.AcceptSession)
	g.POST("/sessions/:token/reject", sessionController.RejectSession)
	g.POST("/sessions/:token/cancel", sessionController.CancelSession)
	g.POST("/sessions/:token/start", sessionController.StartTransfer)
	g.GET("/sessions/:token/progress", sessionController.GetProgress)
	g.GET("/history", sessionController.ListHistory)
}
