package controllers

import (
	"net/http"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateLeadInput is the public landing-page enquiry form.
type CreateLeadInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Postcode string `json:"postcode"`
	Message  string `json:"message"`
}

// CreateLead captures a landing-page enquiry; this endpoint is public
func CreateLead(c *gin.Context) {
	var input CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Email or phone is required")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	lead := models.Lead{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Postcode: input.Postcode,
		Message:  input.Message,
		Source:   "landing_page",
	}

	if err := config.DB.Create(&lead).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save enquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we'll be in touch shortly"})
}

// GetLeads lists captured enquiries for review
func GetLeads(c *gin.Context) {
	var leads []models.Lead
	if err := config.DB.Order("created_at DESC").Find(&leads).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve leads")
		return
	}

	c.JSON(http.StatusOK, leads)
}
