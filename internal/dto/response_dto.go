package dto

import "time"

// QuestionResponse is the teacher-facing view of a question, answer key
// included.
type QuestionResponse struct {
	ID           uint     `json:"id"`
	ReviewID     uint     `json:"review_id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectValue string   `json:"correct_value"`
	Explanation  string   `json:"explanation,omitempty"`
	Hint         *string  `json:"hint,omitempty"`
	Position     int      `json:"position"`
}

// LearnerQuestionResponse is the learner-facing view; the answer key and
// explanation are withheld until after submission.
type LearnerQuestionResponse struct {
	ID       uint     `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Hint     *string  `json:"hint,omitempty"`
	Position int      `json:"position"`
}

type ReviewResponse struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	Subject   string             `json:"subject"`
	Grade     string             `json:"grade"`
	Questions []QuestionResponse `json:"questions,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type AssessmentResponse struct {
	ID               uint      `json:"id"`
	ReviewID         uint      `json:"review_id"`
	Title            string    `json:"title"`
	Subject          string    `json:"subject"`
	Grade            string    `json:"grade"`
	Description      string    `json:"description,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Status           string    `json:"status"`
	AudienceKind     string    `json:"audience_kind"`
	TargetClassIDs   []uint    `json:"target_class_ids,omitempty"`
	TargetGroupIDs   []uint    `json:"target_group_ids,omitempty"`
	TargetLearnerIDs []uint    `json:"target_learner_ids,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// LearnerAssessmentDTO is one row of a learner's assessment list: the
// assessment summary plus its temporal bucket and signed days-until-due
// for that learner.
type LearnerAssessmentDTO struct {
	ID           uint      `json:"id"`
	ReviewID     uint      `json:"review_id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Grade        string    `json:"grade"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Bucket       string    `json:"bucket"`
	DaysUntilDue int       `json:"days_until_due"`
	Score        *int      `json:"score,omitempty"`
}

// LearnerAssessmentDetailDTO is the learner's view of one assessment with
// its question set and any saved progress.
type LearnerAssessmentDetailDTO struct {
	ID           uint                      `json:"id"`
	ReviewID     uint                      `json:"review_id"`
	Title        string                    `json:"title"`
	Subject      string                    `json:"subject"`
	Grade        string                    `json:"grade"`
	Description  string                    `json:"description,omitempty"`
	StartDate    time.Time                 `json:"start_date"`
	EndDate      time.Time                 `json:"end_date"`
	Bucket       string                    `json:"bucket"`
	DaysUntilDue int                       `json:"days_until_due"`
	Questions    []LearnerQuestionResponse `json:"questions"`
	SavedAnswers map[string]string         `json:"saved_answers,omitempty"`
}

type ResponseDTO struct {
	ID          uint              `json:"id"`
	LearnerID   uint              `json:"learner_id"`
	ReviewID    uint              `json:"review_id"`
	Answers     map[string]string `json:"answers"`
	Status      string            `json:"status"`
	Score       *int              `json:"score,omitempty"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Feedback    *string           `json:"feedback,omitempty"`
}

// AssessmentReportDTO summarises one assessment across its roster. Average
// is nil when no completed responses exist; clients render that as "—",
// never 0.
type AssessmentReportDTO struct {
	AssessmentID uint           `json:"assessment_id"`
	RosterSize   int            `json:"roster_size"`
	Buckets      map[string]int `json:"buckets"`
	AverageScore *int           `json:"average_score"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
