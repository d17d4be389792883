package dto

// QuestionForReviewRequest is one question authored as part of a new review.
// CorrectValue must be the exact text of one of Options; the service
// validates membership since a binding tag cannot express it.
type QuestionForReviewRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectValue string   `json:"correct_value" binding:"required"`
	Explanation  string   `json:"explanation"`
	Hint         *string  `json:"hint"`
	Position     int      `json:"position" binding:"required,min=1"`
}

type CreateReviewRequest struct {
	Title     string                     `json:"title" binding:"required"`
	Subject   string                     `json:"subject" binding:"required"`
	Grade     string                     `json:"grade" binding:"required"`
	CreatedBy uint                       `json:"created_by" binding:"required"`
	Questions []QuestionForReviewRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateReviewRequest replaces a review's metadata and question set. Only
// legal while the review is unfrozen, i.e. no assessment referencing it has
// been sent to learners.
type UpdateReviewRequest struct {
	Title     string                     `json:"title" binding:"required"`
	Subject   string                     `json:"subject" binding:"required"`
	Grade     string                     `json:"grade" binding:"required"`
	Questions []QuestionForReviewRequest `json:"questions" binding:"required,min=1,dive"`
}

// CreateAssessmentRequest creates an assessment from an existing review.
// Dates are inclusive calendar dates in YYYY-MM-DD form. AsScheduled false
// leaves the assessment in draft.
type CreateAssessmentRequest struct {
	ReviewID    uint   `json:"review_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Grade       string `json:"grade" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	AsScheduled bool   `json:"as_scheduled"`
	CreatedBy   uint   `json:"created_by" binding:"required"`

	AudienceKind     string `json:"audience_kind" binding:"required,oneof=class group individual"`
	TargetClassIDs   []uint `json:"target_class_ids"`
	TargetGroupIDs   []uint `json:"target_group_ids"`
	TargetLearnerIDs []uint `json:"target_learner_ids"`
}

type RescheduleAssessmentRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// SaveProgressRequest carries a partial answer map keyed by question id
// (decimal string), values being option letters "A".."Z".
type SaveProgressRequest struct {
	LearnerID uint              `json:"learner_id" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

type SubmitResponseRequest struct {
	LearnerID uint              `json:"learner_id" binding:"required"`
	Answers   map[string]string `json:"answers"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type ReminderRequest struct {
	Message string `json:"message" binding:"required"`
}
