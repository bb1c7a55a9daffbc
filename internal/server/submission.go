package server

import (
	"net/http"
	"time"

	"github.com/formbridge/formbridge/internal/export"
	submissiondomain "github.com/formbridge/formbridge/internal/submission/domain"
	"github.com/gin-gonic/gin"
)

type submitFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

func (s *Server) SubmitForm(c *gin.Context) {
	var req submitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	stored, err := s.submissionSvc.Submit(c.Request.Context(), submissiondomain.SubmitRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Form submitted successfully!",
		"submissionId": stored.ID,
	})
}

func (s *Server) ListSubmissions(c *gin.Context) {
	rows, err := s.submissionSvc.List(c.Request.Context(), submissiondomain.ListRequest{})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

func (s *Server) ExportCSV(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("startDate"), false)
	if err != nil {
		AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
		return
	}

	to, err := parseOptionalTime(c.Query("endDate"), true)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	rows, err := s.submissionSvc.List(c.Request.Context(), submissiondomain.ListRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	c.String(http.StatusOK, export.Render(rows))
}
