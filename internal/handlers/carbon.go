package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/carbon"
	"github.com/ecopledge-dev/ecopledge/internal/models"
	"github.com/ecopledge-dev/ecopledge/internal/stats"
	"github.com/ecopledge-dev/ecopledge/internal/types"
	"github.com/ecopledge-dev/ecopledge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateEntryRequest struct {
	carbon.EntryInput
	Date *time.Time `json:"date"`
}

func ListCarbonEntries(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var entries []models.CarbonEntry

	if err := db.DB.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		log.Printf("Failed to list carbon entries: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.CarbonEntryResponse, 0, len(entries))

	for _, entry := range entries {
		response = append(response, toEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateCarbonEntry(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateEntryRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	co2kg, err := req.ResolveCO2()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()

	if req.Date != nil {
		date = *req.Date
	}

	entry := models.CarbonEntry{
		UserID:      userID,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		CO2Kg:       co2kg,
		Date:        date,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to create carbon entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// The entry is committed; a failed recompute leaves the cached total stale
	// until the next write rather than failing the request.
	if err := stats.RecomputeUserTotal(userID); err != nil {
		log.Printf("Failed to recompute total for user %d: %v", userID, err)
	}

	ctx.JSON(http.StatusCreated, toEntryResponse(entry))
}

func GetCarbonStats(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userStats, err := stats.ComputeUserStats(userID)

	if err != nil {
		log.Printf("Failed to compute stats for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, userStats)
}

func DeleteCarbonEntry(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID, err := strconv.ParseUint(ctx.Param("entry_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	var entry models.CarbonEntry

	if err := db.DB.First(&entry, uint(entryID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch carbon entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if entry.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		log.Printf("Failed to delete carbon entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := stats.RecomputeUserTotal(userID); err != nil {
		log.Printf("Failed to recompute total for user %d: %v", userID, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

func toEntryResponse(entry models.CarbonEntry) types.CarbonEntryResponse {
	return types.CarbonEntryResponse{
		ID:          entry.ID,
		Category:    entry.Category,
		Description: entry.Description,
		CO2Kg:       entry.CO2Kg,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
	}
}
