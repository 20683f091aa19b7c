// controllers/invoice.go
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

// GenerateInvoiceInput defines the expected JSON structure for generating an invoice
type GenerateInvoiceInput struct {
	ClientID    uuid.UUID `json:"clientId" binding:"required"`
	PeriodStart string    `json:"periodStart" binding:"required"`
	PeriodEnd   string    `json:"periodEnd" binding:"required"`
	DueDays     int       `json:"dueDays" binding:"omitempty,min=1"`
	Notes       string    `json:"notes"`
}

// InvoiceView wraps an invoice with its derived display status.
type InvoiceView struct {
	models.Invoice
	DisplayStatus models.InvoiceStatus `json:"displayStatus"`
}

func invoiceView(inv *models.Invoice, today time.Time) InvoiceView {
	return InvoiceView{Invoice: *inv, DisplayStatus: inv.DisplayStatus(today)}
}

// GenerateInvoice aggregates a client's uninvoiced completed jobs in a
// period into a draft invoice
func GenerateInvoice(c *gin.Context) {
	var input GenerateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.GenerateInvoice(config.DB, input.ClientID, input.PeriodStart, input.PeriodEnd,
		services.InvoiceOptions{DueDays: input.DueDays, Notes: input.Notes}, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoiceView(invoice, time.Now()))
}

// GetInvoices retrieves all invoices, optionally for one client
func GetInvoices(c *gin.Context) {
	query := config.DB.Preload("Jobs")
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var invoices []models.Invoice
	if err := query.Order("invoice_number DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	now := time.Now()
	views := make([]InvoiceView, 0, len(invoices))
	for i := range invoices {
		views = append(views, invoiceView(&invoices[i], now))
	}

	c.JSON(http.StatusOK, views)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Jobs").First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoiceView(&invoice, time.Now()))
}

// UpdateInvoiceStatusInput carries the next persisted status.
type UpdateInvoiceStatusInput struct {
	Status models.InvoiceStatus `json:"status" binding:"required,oneof=draft pending paid cancelled"`
}

// UpdateInvoiceStatus applies one state-machine transition
func UpdateInvoiceStatus(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.UpdateInvoiceStatus(config.DB, invoiceUUID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceView(invoice, time.Now()))
}

// AddInvoiceJobInput names the job to link.
type AddInvoiceJobInput struct {
	JobID uuid.UUID `json:"jobId" binding:"required"`
}

// AddInvoiceJob links one more completed job to a draft invoice
func AddInvoiceJob(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input AddInvoiceJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.AddJobToInvoice(config.DB, invoiceUUID, input.JobID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceView(invoice, time.Now()))
}

// RemoveInvoiceJob unlinks a job from a draft invoice
func RemoveInvoiceJob(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}
	jobUUID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	invoice, err := services.RemoveJobFromInvoice(config.DB, invoiceUUID, jobUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceView(invoice, time.Now()))
}

// DeleteInvoice removes a draft or cancelled invoice; its number is
// never reused
func DeleteInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	if err := services.DeleteInvoice(config.DB, invoiceUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
