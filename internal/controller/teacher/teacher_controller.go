package teacher

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/service"
	"github.com/rs/zerolog/log"
)

type TeacherController struct {
	reviewService     service.ReviewService
	assessmentService service.AssessmentService
	responseService   service.ResponseService
	reportService     service.ReportService
	reminderService   service.ReminderService
}

func NewTeacherController(
	reviewService service.ReviewService,
	assessmentService service.AssessmentService,
	responseService service.ResponseService,
	reportService service.ReportService,
	reminderService service.ReminderService,
) *TeacherController {
	return &TeacherController{
		reviewService:     reviewService,
		assessmentService: assessmentService,
		responseService:   responseService,
		reportService:     reportService,
		reminderService:   reminderService,
	}
}

// CreateReview godoc
// @Summary (Teacher) Create a review with its question set
// @Tags Teacher - Reviews
// @Accept json
// @Produce json
// @Param review_data body dto.CreateReviewRequest true "Review with ordered questions"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /teacher/reviews [post]
func (c *TeacherController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateReview: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.reviewService.CreateReview(req)
	if err != nil {
		respondError(ctx, err, "Failed to create review")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetReview godoc
// @Summary (Teacher) Get a review with its questions and answer key
// @Tags Teacher - Reviews
// @Produce json
// @Param review_id path int true "Review ID"
// @Success 200 {object} dto.ReviewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/reviews/{review_id} [get]
func (c *TeacherController) GetReview(ctx *gin.Context) {
	id, ok := pathID(ctx, "review_id")
	if !ok {
		return
	}
	resp, err := c.reviewService.GetReview(id)
	if err != nil {
		respondError(ctx, err, "Failed to fetch review")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateReview godoc
// @Summary (Teacher) Replace a review's metadata and question set
// @Description Rejected with 409 once any assessment built from the review has been sent to learners.
// @Tags Teacher - Reviews
// @Accept json
// @Produce json
// @Param review_id path int true "Review ID"
// @Param review_data body dto.UpdateReviewRequest true "Replacement review content"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Review is frozen"
// @Router /teacher/reviews/{review_id} [put]
func (c *TeacherController) UpdateReview(ctx *gin.Context) {
	id, ok := pathID(ctx, "review_id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.reviewService.UpdateReview(id, req)
	if err != nil {
		respondError(ctx, err, "Failed to update review")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateAssessment godoc
// @Summary (Teacher) Create an assessment from a review
// @Description Creates as draft, or scheduled when as_scheduled is set.
// @Tags Teacher - Assessments
// @Accept json
// @Produce json
// @Param assessment_data body dto.CreateAssessmentRequest true "Assessment data"
// @Success 201 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /teacher/assessments [post]
func (c *TeacherController) CreateAssessment(ctx *gin.Context) {
	var req dto.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.assessmentService.Create(req)
	if err != nil {
		respondError(ctx, err, "Failed to create assessment")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssessments godoc
// @Summary (Teacher) List assessments created by a teacher
// @Tags Teacher - Assessments
// @Produce json
// @Param teacher_id query int true "Teacher ID"
// @Success 200 {array} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /teacher/assessments [get]
func (c *TeacherController) ListAssessments(ctx *gin.Context) {
	teacherID, err := strconv.ParseUint(ctx.Query("teacher_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid teacher_id"})
		return
	}
	resp, err := c.assessmentService.ListByTeacher(uint(teacherID))
	if err != nil {
		respondError(ctx, err, "Failed to list assessments")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Reschedule godoc
// @Summary (Teacher) Move a scheduled assessment's date window
// @Tags Teacher - Assessments
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param dates body dto.RescheduleAssessmentRequest true "New date window"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/assessments/{assessment_id}/reschedule [put]
func (c *TeacherController) Reschedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.RescheduleAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.assessmentService.Reschedule(id, req)
	if err != nil {
		respondError(ctx, err, "Failed to reschedule assessment")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SendNow godoc
// @Summary (Teacher) Send a scheduled assessment to learners immediately
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/assessments/{assessment_id}/send-now [post]
func (c *TeacherController) SendNow(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.SendNow(id)
	if err != nil {
		respondError(ctx, err, "Failed to send assessment")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary (Teacher) Cancel an assessment
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/assessments/{assessment_id}/cancel [post]
func (c *TeacherController) Cancel(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.Cancel(id)
	if err != nil {
		respondError(ctx, err, "Failed to cancel assessment")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetReport godoc
// @Summary (Teacher) Submission statistics for an assessment
// @Tags Teacher - Reports
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentReportDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/assessments/{assessment_id}/report [get]
func (c *TeacherController) GetReport(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	resp, err := c.reportService.BuildReport(id)
	if err != nil {
		respondError(ctx, err, "Failed to build report")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AttachFeedback godoc
// @Summary (Teacher) Attach feedback to a learner response
// @Tags Teacher - Responses
// @Accept json
// @Produce json
// @Param response_id path int true "Response ID"
// @Param feedback body dto.FeedbackRequest true "Feedback text"
// @Success 200 {object} dto.ResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/responses/{response_id}/feedback [put]
func (c *TeacherController) AttachFeedback(ctx *gin.Context) {
	id, ok := pathID(ctx, "response_id")
	if !ok {
		return
	}
	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.responseService.AttachFeedback(id, req)
	if err != nil {
		respondError(ctx, err, "Failed to attach feedback")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SendReminders godoc
// @Summary (Teacher) Send reminders to learners who have not submitted
// @Tags Teacher - Assessments
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param reminder body dto.ReminderRequest true "Reminder message"
// @Success 200 {object} map[string]int
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/assessments/{assessment_id}/reminders [post]
func (c *TeacherController) SendReminders(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.ReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	count, err := c.reminderService.SendReminders(id, req.Message)
	if err != nil {
		respondError(ctx, err, "Failed to send reminders")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"recipients": count})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func respondError(ctx *gin.Context, err error, message string) {
	switch {
	case apperror.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	case apperror.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	case apperror.IsConflict(err):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Msg(message)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message})
	}
}
