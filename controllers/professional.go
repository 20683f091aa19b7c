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

// AvailabilityInput is the seven weekday flags controlling assignment.
type AvailabilityInput struct {
	Monday    *bool `json:"monday"`
	Tuesday   *bool `json:"tuesday"`
	Wednesday *bool `json:"wednesday"`
	Thursday  *bool `json:"thursday"`
	Friday    *bool `json:"friday"`
	Saturday  *bool `json:"saturday"`
	Sunday    *bool `json:"sunday"`
}

// CreateProfessionalInput defines the expected JSON structure for creating a professional
type CreateProfessionalInput struct {
	Name                 string             `json:"name" binding:"required"`
	Phone                string             `json:"phone" binding:"required"`
	Email                *string            `json:"email"`
	BankName             string             `json:"bankName"`
	AccountNumber        string             `json:"accountNumber"`
	SortCode             string             `json:"sortCode"`
	RatePerHour          float64            `json:"ratePerHour" binding:"required,gt=0"`
	DeepCleanRatePerHour *float64           `json:"deepCleanRatePerHour" binding:"omitempty,gt=0"`
	Availability         *AvailabilityInput `json:"availability"`
}

// UpdateProfessionalInput defines the expected JSON structure for updating a professional
type UpdateProfessionalInput struct {
	Name                 *string                    `json:"name"`
	Phone                *string                    `json:"phone"`
	Email                *string                    `json:"email"`
	BankName             *string                    `json:"bankName"`
	AccountNumber        *string                    `json:"accountNumber"`
	SortCode             *string                    `json:"sortCode"`
	RatePerHour          *float64                   `json:"ratePerHour" binding:"omitempty,gt=0"`
	DeepCleanRatePerHour *float64                   `json:"deepCleanRatePerHour" binding:"omitempty,gt=0"`
	Status               *models.ProfessionalStatus `json:"status"`
	Availability         *AvailabilityInput         `json:"availability"`
}

func applyAvailability(pro *models.Professional, in *AvailabilityInput) {
	if in.Monday != nil {
		pro.WorksMonday = *in.Monday
	}
	if in.Tuesday != nil {
		pro.WorksTuesday = *in.Tuesday
	}
	if in.Wednesday != nil {
		pro.WorksWednesday = *in.Wednesday
	}
	if in.Thursday != nil {
		pro.WorksThursday = *in.Thursday
	}
	if in.Friday != nil {
		pro.WorksFriday = *in.Friday
	}
	if in.Saturday != nil {
		pro.WorksSaturday = *in.Saturday
	}
	if in.Sunday != nil {
		pro.WorksSunday = *in.Sunday
	}
}

// CreateProfessional creates a new professional
func CreateProfessional(c *gin.Context) {
	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	pro := models.Professional{
		ID:                   uuid.New(),
		Name:                 input.Name,
		Phone:                input.Phone,
		BankName:             input.BankName,
		AccountNumber:        input.AccountNumber,
		SortCode:             input.SortCode,
		RatePerHour:          input.RatePerHour,
		DeepCleanRatePerHour: input.DeepCleanRatePerHour,
		Status:               models.ProfessionalActive,
		WorksMonday:          true,
		WorksTuesday:         true,
		WorksWednesday:       true,
		WorksThursday:        true,
		WorksFriday:          true,
	}

	if input.Email != nil {
		pro.Email = *input.Email
	}
	if input.Availability != nil {
		applyAvailability(&pro, input.Availability)
	}

	if err := config.DB.Create(&pro).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	c.JSON(http.StatusCreated, pro)
}

// GetProfessionals retrieves all professionals
func GetProfessionals(c *gin.Context) {
	var pros []models.Professional
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("name ASC").Find(&pros).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}

	c.JSON(http.StatusOK, pros)
}

// GetProfessional retrieves a specific professional by ID
func GetProfessional(c *gin.Context) {
	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var pro models.Professional
	if err := config.DB.First(&pro, "id = ?", proUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pro)
}

// UpdateProfessional updates an existing professional. Rate changes never
// touch the snapshots on existing jobs.
func UpdateProfessional(c *gin.Context) {
	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pro models.Professional
	if err := config.DB.First(&pro, "id = ?", proUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pro.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		pro.Phone = *input.Phone
	}
	if input.Email != nil {
		pro.Email = *input.Email
	}
	if input.BankName != nil {
		pro.BankName = *input.BankName
	}
	if input.AccountNumber != nil {
		pro.AccountNumber = *input.AccountNumber
	}
	if input.SortCode != nil {
		pro.SortCode = *input.SortCode
	}
	if input.RatePerHour != nil {
		pro.RatePerHour = *input.RatePerHour
	}
	if input.DeepCleanRatePerHour != nil {
		pro.DeepCleanRatePerHour = input.DeepCleanRatePerHour
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional status")
			return
		}
		pro.Status = *input.Status
	}
	if input.Availability != nil {
		applyAvailability(&pro, input.Availability)
	}

	if err := config.DB.Save(&pro).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update professional")
		return
	}

	c.JSON(http.StatusOK, pro)
}

// DeleteProfessional soft deletes a professional
func DeleteProfessional(c *gin.Context) {
	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	result := config.DB.Where("id = ?", proUUID).Delete(&models.Professional{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete professional")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Professional deleted successfully"})
}
