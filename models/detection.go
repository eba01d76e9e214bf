package models

import "encoding/json"

// ImageDetectionResult is the response for POST /detect/image.
type ImageDetectionResult struct {
	Success              bool     `json:"success"`
	IsValidImage         bool     `json:"is_valid_image"`
	ImageType            string   `json:"image_type,omitempty"` // "tongue" | "nail"
	ValidationConfidence *float64 `json:"validation_confidence,omitempty"`
	Probability          *float64 `json:"probability,omitempty"`
	Prediction           string   `json:"prediction,omitempty"` // "DIABETES" | "NON_DIABETES"
	RiskLevel            string   `json:"risk_level,omitempty"` // "tidak" | "rendah" | "sedang" | "tinggi"
	Message              string   `json:"message"`
}

// QuestionnaireResult is the response for both questionnaire endpoints.
type QuestionnaireResult struct {
	Success         bool     `json:"success"`
	Score           float64  `json:"score"`
	RiskLevel       string   `json:"risk_level"`
	Interpretation  string   `json:"interpretation"`
	Recommendations []string `json:"recommendations"`
}

// CombinedRequest carries an optional image score plus raw questionnaire
// answers; the is_diabetic flag selects which variant the answers are
// validated against.
type CombinedRequest struct {
	IsDiabetic    *bool           `json:"is_diabetic" binding:"required"`
	ImageScore    *float64        `json:"image_score" binding:"omitempty,gte=0,lte=1"`
	Questionnaire json.RawMessage `json:"questionnaire" binding:"required"`
}

// CombinedResult is the response for POST /detect/combined.
type CombinedResult struct {
	Success            bool     `json:"success"`
	ImageScore         *float64 `json:"image_score"`
	QuestionnaireScore float64  `json:"questionnaire_score"`
	FinalScore         float64  `json:"final_score"`
	RiskLevel          string   `json:"risk_level"`
	Interpretation     string   `json:"interpretation"`
	Recommendations    []string `json:"recommendations"`
}
