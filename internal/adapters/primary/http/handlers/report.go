package handlers

import (
	"net/http"
	"strconv"

	"model-serving-service/internal/adapters/primary/http/dto"
	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ports.ReportListFilter{
		Kind:    domain.ReportKind(c.Query("kind")),
		Subject: c.Query("subject"),
		Limit:   limit,
	}

	reports, err := h.reportSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list reports failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListReportsResponse(reports))
}

func (h *Handler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidReportID)
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}
