package controllers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/zelphyx/Glucoin-AI/models"
	"github.com/zelphyx/Glucoin-AI/services"
	"github.com/zelphyx/Glucoin-AI/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type DetectionController struct {
	Classifier *services.ClassifierService
}

func NewDetectionController(classifier *services.ClassifierService) *DetectionController {
	return &DetectionController{Classifier: classifier}
}

func (dc *DetectionController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Diabetes Detection API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"detect_image":                      "POST /detect/image",
			"detect_questionnaire_non_diabetic": "POST /detect/questionnaire/non-diabetic",
			"detect_questionnaire_diabetic":     "POST /detect/questionnaire/diabetic",
			"detect_combined":                   "POST /detect/combined",
		},
	})
}

func (dc *DetectionController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"classifier_configured": dc.Classifier.Configured(),
		"threshold":             services.DiabetesThreshold,
	})
}

func indonesianType(imageType string) string {
	if imageType == services.ImageTypeNail {
		return "kuku"
	}
	return "lidah"
}

// DetectImage validates the upload against the claimed subject and, when it
// passes, asks the hosted classifier for a diabetes probability.
func (dc *DetectionController) DetectImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file gambar wajib diunggah"})
		return
	}

	imageType := c.DefaultPostForm("image_type", services.ImageTypeTongue)
	if imageType != services.ImageTypeTongue && imageType != services.ImageTypeNail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_type harus 'tongue' atau 'nail'"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File harus berupa gambar"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gambar tidak dapat dibaca"})
		return
	}

	verdict := services.ValidateImage(img, imageType)
	if !verdict.Valid {
		c.JSON(http.StatusOK, models.ImageDetectionResult{
			Success:              false,
			IsValidImage:         false,
			ImageType:            imageType,
			ValidationConfidence: &verdict.Confidence,
			Message: fmt.Sprintf("❌ Gambar tidak valid. %s. Silakan upload gambar %s yang jelas.",
				verdict.Message, indonesianType(imageType)),
		})
		return
	}

	prob, err := dc.Classifier.PredictProbability(data, contentType)
	if err != nil {
		if err == services.ErrClassifierNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model klasifikasi tidak tersedia"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Archive the accepted upload when S3 is configured; never blocks the
	// response.
	if _, err := utils.ArchiveDetectionImage(data, imageType, contentType); err != nil {
		log.Printf("archive upload: %v", err)
	}

	c.JSON(http.StatusOK, models.ImageDetectionResult{
		Success:              true,
		IsValidImage:         true,
		ImageType:            imageType,
		ValidationConfidence: &verdict.Confidence,
		Probability:          &prob,
		Prediction:           services.PredictionLabel(prob),
		RiskLevel:            string(services.ClassifyRisk(prob)),
		Message: fmt.Sprintf("✅ Analisis gambar %s selesai. Probabilitas diabetes: %.1f%%",
			indonesianType(imageType), prob*100),
	})
}

// QuestionnaireNonDiabetic scores the screening questionnaire for
// respondents without a diabetes diagnosis.
func (dc *DetectionController) QuestionnaireNonDiabetic(c *gin.Context) {
	var q models.QuestionnaireNonDiabetic
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := services.ScoreNonDiabetic(&q)
	c.JSON(http.StatusOK, models.QuestionnaireResult{
		Success:         true,
		Score:           score,
		RiskLevel:       string(services.ClassifyRisk(score)),
		Interpretation:  services.Interpret(score, false),
		Recommendations: services.Recommend(score, false),
	})
}

// QuestionnaireDiabetic scores the monitoring questionnaire for respondents
// already diagnosed.
func (dc *DetectionController) QuestionnaireDiabetic(c *gin.Context) {
	var q models.QuestionnaireDiabetic
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := services.ScoreDiabetic(&q)
	c.JSON(http.StatusOK, models.QuestionnaireResult{
		Success:         true,
		Score:           score,
		RiskLevel:       string(services.ClassifyRisk(score)),
		Interpretation:  services.Interpret(score, true),
		Recommendations: services.Recommend(score, true),
	})
}

// DetectCombined blends an optional image score with the questionnaire the
// is_diabetic flag selects: 70% image + 30% questionnaire.
func (dc *DetectionController) DetectCombined(c *gin.Context) {
	var req models.CombinedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isDiabetic := *req.IsDiabetic
	var qScore float64
	if isDiabetic {
		var q models.QuestionnaireDiabetic
		if err := binding.JSON.BindBody(req.Questionnaire, &q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		qScore = services.ScoreDiabetic(&q)
	} else {
		var q models.QuestionnaireNonDiabetic
		if err := binding.JSON.BindBody(req.Questionnaire, &q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		qScore = services.ScoreNonDiabetic(&q)
	}

	finalScore := services.CombineScores(qScore, req.ImageScore)

	c.JSON(http.StatusOK, models.CombinedResult{
		Success:            true,
		ImageScore:         req.ImageScore,
		QuestionnaireScore: qScore,
		FinalScore:         finalScore,
		RiskLevel:          string(services.ClassifyRisk(finalScore)),
		Interpretation:     services.Interpret(finalScore, isDiabetic),
		Recommendations:    services.Recommend(finalScore, isDiabetic),
	})
}
