package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/constants"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/dto"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListTokens ingests new launches and returns one page of tokens
	// GET /tokens?page=<page>&limit=<limit>&q=<query>
	ListTokens(c *gin.Context)

	// GetToken retrieves a single token with its replies
	// GET /tokens/:address
	GetToken(c *gin.Context)

	// GetTokenFeed retrieves the price feed of a token
	// GET /tokens/:address/feed
	GetTokenFeed(c *gin.Context)

	// AddReply appends a reply to a token
	// POST /tokens/:address/reply
	AddReply(c *gin.Context)

	// GetTokensByCreator retrieves tokens created by an address
	// GET /tokens/by-user/:address
	GetTokensByCreator(c *gin.Context)

	// RefreshTokens ingests new launches
	// POST /tokens/refresh, POST /token/refresh
	RefreshTokens(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) ListTokens(c *gin.Context) {
	params := ParseListTokensQuery(c)

	resp, err := h.executor.ListTokens(c.Request.Context(), params.Page, params.Limit, params.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetToken(c *gin.Context) {
	resp, err := h.executor.GetToken(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetTokenFeed(c *gin.Context) {
	resp, err := h.executor.GetPriceFeed(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) AddReply(c *gin.Context) {
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.executor.AddReply(c.Request.Context(), c.Param("address"), req.Reply); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MESSAGE_SUCCESS})
}

func (h *handler) GetTokensByCreator(c *gin.Context) {
	resp, err := h.executor.GetTokensByCreator(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RefreshTokens(c *gin.Context) {
	if err := h.executor.RefreshTokens(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MESSAGE_SUCCESS})
}

func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Health(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: constants.STATUS_OK})
}
