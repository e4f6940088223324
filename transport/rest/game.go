package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type symbolRequest struct {
	Mark string `json:"mark" binding:"required,mark"`
}

type moveRequest struct {
	Row *int `json:"row" binding:"required,min=0,max=2"`
	Col *int `json:"col" binding:"required,min=0,max=2"`
}

type gameResponse struct {
	Game   entity.Snapshot `json:"game"`
	Status string          `json:"status"`
}

func newGameResponse(snapshot entity.Snapshot) gameResponse {
	return gameResponse{
		Game:   snapshot,
		Status: snapshot.StatusText(),
	}
}

func (that *Server) getGame(c *gin.Context) {
	SuccessResponse(c, newGameResponse(that.manager.State()))
}

func (that *Server) chooseSymbol(c *gin.Context) {
	var req symbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := that.manager.ChooseSymbol(c.Request.Context(), parseMark(req.Mark))
	if err != nil {
		that.gameError(c, "chooseSymbol", err)
		return
	}

	SuccessResponse(c, newGameResponse(snapshot))
}

func (that *Server) makeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := that.manager.MakeTurn(c.Request.Context(), *req.Row, *req.Col)
	if err != nil {
		that.gameError(c, "makeMove", err)
		return
	}

	SuccessResponse(c, newGameResponse(snapshot))
}

func (that *Server) restart(c *gin.Context) {
	snapshot, err := that.manager.Restart(c.Request.Context())
	if err != nil {
		that.gameError(c, "restart", err)
		return
	}

	SuccessResponse(c, newGameResponse(snapshot))
}

func (that *Server) stats(c *gin.Context) {
	stats, err := that.manager.Stats(c.Request.Context())
	if err != nil {
		that.gameError(c, "stats", err)
		return
	}

	SuccessResponse(c, stats)
}

func (that *Server) history(c *gin.Context) {
	games, err := that.manager.History(c.Request.Context())
	if err != nil {
		that.gameError(c, "history", err)
		return
	}

	SuccessResponse(c, gin.H{"list": games})
}

// gameError - rejected moves and symbols are the caller's fault, anything else is ours.
func (that *Server) gameError(c *gin.Context, handler string, err error) {
	if errors.Is(err, apperror.ErrInvalidMove) || errors.Is(err, apperror.ErrInvalidSymbol) {
		ErrorResponse(c, http.StatusConflict, err.Error())
		return
	}

	that.logger.Error("request failed", "handler", handler, "error", err)
	ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
