package controllers

import (
	"errors"
	"net/http"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name                  string   `json:"name" binding:"required"`
	Phone                 string   `json:"phone" binding:"required"`
	Email                 *string  `json:"email"`
	Address               string   `json:"address"`
	Postcode              string   `json:"postcode"`
	PricePerHour          float64  `json:"pricePerHour" binding:"required,gt=0"`
	DeepCleanPricePerHour *float64 `json:"deepCleanPricePerHour" binding:"omitempty,gt=0"`
	Notes                 string   `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name                  *string              `json:"name"`
	Phone                 *string              `json:"phone"`
	Email                 *string              `json:"email"`
	Address               *string              `json:"address"`
	Postcode              *string              `json:"postcode"`
	PricePerHour          *float64             `json:"pricePerHour" binding:"omitempty,gt=0"`
	DeepCleanPricePerHour *float64             `json:"deepCleanPricePerHour" binding:"omitempty,gt=0"`
	Notes                 *string              `json:"notes"`
	Status                *models.ClientStatus `json:"status"`
}

// CreateClient creates a new client
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		ID:                    uuid.New(),
		Name:                  input.Name,
		Phone:                 input.Phone,
		Address:               input.Address,
		Postcode:              input.Postcode,
		PricePerHour:          input.PricePerHour,
		DeepCleanPricePerHour: input.DeepCleanPricePerHour,
		Notes:                 input.Notes,
		Status:                models.ClientActive,
	}

	if input.Email != nil {
		client.Email = *input.Email
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("name ASC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client. Rate changes never touch the
// snapshots on existing jobs.
func UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Postcode != nil {
		client.Postcode = *input.Postcode
	}
	if input.PricePerHour != nil {
		client.PricePerHour = *input.PricePerHour
	}
	if input.DeepCleanPricePerHour != nil {
		client.DeepCleanPricePerHour = input.DeepCleanPricePerHour
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client status")
			return
		}
		client.Status = *input.Status
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("id = ?", clientUUID).Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
