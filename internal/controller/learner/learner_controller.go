package learner

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/service"
	"github.com/rs/zerolog/log"
)

type LearnerController struct {
	learnerService  service.LearnerService
	responseService service.ResponseService
}

func NewLearnerController(learnerService service.LearnerService, responseService service.ResponseService) *LearnerController {
	return &LearnerController{
		learnerService:  learnerService,
		responseService: responseService,
	}
}

// ListAssessments godoc
// @Summary (Learner) List the assessments that apply to a learner, bucketed
// @Description Each row carries the temporal bucket (upcoming, in_progress, missed, completed) and signed days until due.
// @Tags Learner - Assessments
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {array} dto.LearnerAssessmentDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /learners/{learner_id}/assessments [get]
func (c *LearnerController) ListAssessments(ctx *gin.Context) {
	learnerID, ok := pathID(ctx, "learner_id")
	if !ok {
		return
	}
	rows, err := c.learnerService.ListAssessments(learnerID)
	if err != nil {
		respondError(ctx, err, "Failed to list assessments")
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// GetAssessment godoc
// @Summary (Learner) Assessment detail with questions and saved progress
// @Tags Learner - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param learner_id query int true "Learner ID"
// @Success 200 {object} dto.LearnerAssessmentDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{assessment_id} [get]
func (c *LearnerController) GetAssessment(ctx *gin.Context) {
	assessmentID, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	learnerID, err := strconv.ParseUint(ctx.Query("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid learner_id"})
		return
	}
	detail, err := c.learnerService.GetAssessmentDetail(assessmentID, uint(learnerID))
	if err != nil {
		respondError(ctx, err, "Failed to fetch assessment")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SaveProgress godoc
// @Summary (Learner) Save partial answers without submitting
// @Description Merges the posted answers into the learner's single response row for the review; previously saved answers survive unless overwritten.
// @Tags Learner - Responses
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param progress body dto.SaveProgressRequest true "Partial answer map"
// @Success 200 {object} dto.ResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /assessments/{assessment_id}/progress [put]
func (c *LearnerController) SaveProgress(ctx *gin.Context) {
	assessmentID, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.SaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveProgress: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.responseService.SaveProgress(assessmentID, req)
	if err != nil {
		respondError(ctx, err, "Failed to save progress")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary (Learner) Submit answers for scoring
// @Description Finalizes the response: merges any last answers, scores against the answer key and records the submission timestamp.
// @Tags Learner - Responses
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param submission body dto.SubmitResponseRequest true "Final answers (merged over saved progress)"
// @Success 200 {object} dto.ResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /assessments/{assessment_id}/submit [post]
func (c *LearnerController) Submit(ctx *gin.Context) {
	assessmentID, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Submit: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.responseService.Submit(assessmentID, req)
	if err != nil {
		respondError(ctx, err, "Failed to submit response")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResponse godoc
// @Summary (Learner) Fetch the learner's response for a review
// @Tags Learner - Responses
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Param review_id path int true "Review ID"
// @Success 200 {object} dto.ResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /learners/{learner_id}/reviews/{review_id}/response [get]
func (c *LearnerController) GetResponse(ctx *gin.Context) {
	learnerID, ok := pathID(ctx, "learner_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(ctx, "review_id")
	if !ok {
		return
	}
	resp, err := c.responseService.GetForLearner(learnerID, reviewID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch response")
		return
	}
	ctx.JSON(http.StatusOK, resp)
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
