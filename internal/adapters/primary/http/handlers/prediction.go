package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"model-serving-service/internal/adapters/primary/http/dto"
	"model-serving-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	record, err := req.ToDomain()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	prediction, err := h.predictionSvc.Predict(c.Request.Context(), record)
	if err != nil {
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("prediction failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictResponse(prediction))
}

func (h *Handler) GetModel(c *gin.Context) {
	version := h.predictionSvc.Version()
	if version == nil {
		mapDomainError(c, domain.ErrModelNotLoaded)
		return
	}
	c.JSON(http.StatusOK, dto.ToModelResponse(version))
}

// bindError separates undecodable bodies from payloads missing a field.
func bindError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrMissingField, err)
}
