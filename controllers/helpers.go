package controllers

import (
	"errors"
	"net/http"

	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP codes:
// validation failures are 400, missing entities 404, store failures 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
		return
	}
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
}
