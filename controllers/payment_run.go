package controllers

import (
	"errors"
	"net/http"
	"time"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratePaymentRunInput defines the expected JSON structure for generating a payment run
type GeneratePaymentRunInput struct {
	PeriodStart string `json:"periodStart" binding:"required"`
	PeriodEnd   string `json:"periodEnd" binding:"required"`
}

// GeneratePaymentRun aggregates completed jobs in the period into one
// pending item per professional
func GeneratePaymentRun(c *gin.Context) {
	var input GeneratePaymentRunInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	run, err := services.GeneratePaymentRun(config.DB, input.PeriodStart, input.PeriodEnd, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, run)
}

// GetPaymentRuns retrieves all payment runs with their items
func GetPaymentRuns(c *gin.Context) {
	var runs []models.PaymentRun
	if err := config.DB.Preload("Items").Order("period_start DESC").Find(&runs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment runs")
		return
	}

	c.JSON(http.StatusOK, runs)
}

// GetPaymentRun retrieves a specific payment run with its items
func GetPaymentRun(c *gin.Context) {
	runUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment run ID format")
		return
	}

	var run models.PaymentRun
	if err := config.DB.Preload("Items").First(&run, "id = ?", runUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment run not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, run)
}

// MarkPaymentRunItemPaid flips a pending item to paid
func MarkPaymentRunItemPaid(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment run item ID format")
		return
	}

	item, err := services.MarkPaymentRunItemPaid(config.DB, itemUUID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
