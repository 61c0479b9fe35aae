package webapi

import (
	"net/http"

	"github.com/handoff-labs/handoff/pkg/transfer"
	"github.com/handoff-labs/handoff/pkg/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
)

type SessionController struct {
	orchestrator *transfer.Orchestrator
}

func NewSessionController(orchestrator *transfer.Orchestrator) *SessionController {
	return &SessionController{orchestrator: orchestrator}
}

func (c *SessionController) CreateSession(ctx echo.Context) error {
	var req struct {
		ReceiverEmail string                   `json:"receiver_email"`
		Manifest      []transfer.ManifestEntry `json:"manifest"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user, err := apimiddleware.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	session, err := c.orchestrator.CreateSession(user.ID, req.ReceiverEmail, req.Manifest)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, map[string]interface{}{
		"session_id":    session.UUID,
		"session_token": session.SessionToken,
	})
}

func (c *SessionController) GetSession(ctx echo.Context) error {
	session, err := c.orchestrator.GetSession(ctx.Param("token"))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, session)
}

func (c *SessionController) AcceptSession(ctx echo.Context) error {
	user, err := apimiddleware.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.orchestrator.AcceptSession(ctx.Param("token"), user.ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *SessionController) RejectSession(ctx echo.Context) error {
	user, err := apimiddleware.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.orchestrator.RejectSession(ctx.Param("token"), user.ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *SessionController) CancelSession(ctx echo.Context) error {
	user, err := apimiddleware.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.orchestrator.CancelSession(ctx.Param("token"), user.ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *SessionController) StartTransfer(ctx echo.Context) error {
	fileCount, err := c.orchestrator.StartTransfer(ctx.Param("token"))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusAccepted, map[string]int{"file_count": fileCount})
}

func (c *SessionController) GetProgress(ctx echo.Context) error {
	progress, err := c.orchestrator.GetProgress(ctx.Param("token"))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, progress)
}

func (c *SessionController) ListHistory(ctx echo.Context) error {
	user, err := apimiddleware.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	var req struct {
		Page     int `query:"page"`
		PageSize int `query:"page_size"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	summaries, err := c.orchestrator.ListHistory(user.ID, req.Page, req.PageSize)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}
