package handlers

import (
	"model-serving-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	predictionSvc *services.PredictionService
	reportSvc     *services.ReportService
}

func New(predictionSvc *services.PredictionService, reportSvc *services.ReportService) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		reportSvc:     reportSvc,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	// Serving
	r.GET("/health", h.Health)
	r.POST("/predict_api", h.Predict)
	r.GET("/model", h.GetModel)

	// Validation reports
	r.GET("/reports", h.ListReports)
	r.GET("/reports/:id", h.GetReport)
}
