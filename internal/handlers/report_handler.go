package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// ReportHandler handles lecture report requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReportRequest represents a lecture report submission
type CreateReportRequest struct {
	ClassID               uint       `json:"class_id" validate:"required"`
	WeekOfReporting       string     `json:"week_of_reporting" validate:"required"`
	DateOfLecture         *time.Time `json:"date_of_lecture"`
	TopicTaught           string     `json:"topic_taught" validate:"required"`
	LearningOutcomes      string     `json:"learning_outcomes"`
	Recommendations       string     `json:"recommendations"`
	ActualStudentsPresent int        `json:"actual_students_present" validate:"min=0"`
}

// FeedbackRequest represents review feedback on a report
type FeedbackRequest struct {
	Comments string `json:"comments" validate:"required"`
}

// List returns the reports visible to the caller
// @Summary List lecture reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Reports"
// @Router /reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	reports, err := h.reportService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reports": reports,
	})
}

// Create submits a lecture report for a class the caller teaches
// @Summary Submit a lecture report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report details"
// @Success 201 {object} map[string]interface{} "Report created"
// @Failure 403 {object} map[string]string "Not assigned to this class"
// @Router /reports [post]
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req CreateReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report := &models.Report{
		ClassID:               req.ClassID,
		WeekOfReporting:       req.WeekOfReporting,
		DateOfLecture:         req.DateOfLecture,
		TopicTaught:           req.TopicTaught,
		LearningOutcomes:      req.LearningOutcomes,
		Recommendations:       req.Recommendations,
		ActualStudentsPresent: req.ActualStudentsPresent,
	}
	if err := h.reportService.Submit(claims, report); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Report submitted", "report_id", report.ID, "class_id", report.ClassID, "lecturer_id", claims.UserID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"report":  report,
	})
}

// Feedback attaches reviewer comments to a report
// @Summary Add feedback to a report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body FeedbackRequest true "Feedback comments"
// @Success 201 {object} map[string]interface{} "Feedback created"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report already has feedback"
// @Router /reports/{id}/feedback [post]
func (h *ReportHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	feedback, err := h.reportService.AttachFeedback(claims, reportID, req.Comments)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Feedback added", "report_id", reportID, "reviewer_id", claims.UserID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"feedback": feedback,
	})
}

// Delete removes a report and its feedback
// @Summary Delete a lecture report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{} "Report deleted"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reportService.Delete(reportID); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Report deleted", "report_id", reportID)

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "report deleted",
	})
}
