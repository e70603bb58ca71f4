package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ecopledge-dev/ecopledge/internal/carbon"
	"github.com/ecopledge-dev/ecopledge/internal/pledges"
	"github.com/ecopledge-dev/ecopledge/internal/stats"
	"github.com/ecopledge-dev/ecopledge/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreatePledgeRequest struct {
	Text string `json:"text"`
}

// PledgeHandler serves the pledge wall endpoints. The engine (and through it
// the broadcaster) is injected at construction.
type PledgeHandler struct {
	engine *pledges.Engine
}

func NewPledgeHandler(engine *pledges.Engine) *PledgeHandler {
	return &PledgeHandler{engine: engine}
}

func (h *PledgeHandler) ListPledges(ctx *gin.Context) {
	limit := pledges.DefaultFeedLimit

	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	feed, err := h.engine.Feed(limit)

	if err != nil {
		log.Printf("Failed to list pledges: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, feed)
}

func (h *PledgeHandler) CreatePledge(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePledgeRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	pledge, err := h.engine.Create(userID, req.Text)

	if err != nil {
		var validationErr *pledges.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
			return
		}
		log.Printf("Failed to create pledge: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, pledge)
}

func (h *PledgeHandler) ToggleLike(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pledgeID, err := strconv.ParseUint(ctx.Param("pledge_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pledge ID"})
		return
	}

	pledge, err := h.engine.ToggleLike(uint(pledgeID), userID)

	if err != nil {
		if errors.Is(err, pledges.ErrPledgeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Pledge not found"})
			return
		}
		log.Printf("Failed to toggle like on pledge %d: %v", pledgeID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, pledge)
}

func (h *PledgeHandler) GetGlobalCO2(ctx *gin.Context) {
	total, err := stats.GlobalTotal()

	if err != nil {
		log.Printf("Failed to compute global CO2: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"globalCO2": carbon.Round2(total)})
}
