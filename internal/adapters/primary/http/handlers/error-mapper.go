package handlers

import (
	"errors"
	"net/http"

	"model-serving-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request errors
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrInvalidReportID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Present but out-of-domain values
	case errors.Is(err, domain.ErrInvalidField):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Model invocation errors
	case errors.Is(err, domain.ErrModelNotLoaded),
		errors.Is(err, domain.ErrPredictionFailed),
		errors.Is(err, domain.ErrPredictionShape),
		errors.Is(err, domain.ErrNonBinaryOutput):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrReportStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
