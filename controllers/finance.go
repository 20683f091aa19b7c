package controllers

import (
	"net/http"
	"time"

	"cleanops-backend/config"
	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetFinanceSummary returns revenue, cost and profit over completed jobs
// in the requested period; defaults to the current month
func GetFinanceSummary(c *gin.Context) {
	now := time.Now()
	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = utils.DateKey(firstOfMonth)
	}
	if to == "" {
		to = utils.DateKey(now)
	}

	summary, err := services.FinanceSummary(config.DB, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
