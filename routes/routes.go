package routes

import (
	"time"

	"github.com/zelphyx/Glucoin-AI/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsConfig mirrors the allow-all posture both upstream services ship with;
// the apps sit behind an API gateway that owns the real origin policy.
func corsConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	})
}

// SetupDetectionRouter wires the detection API.
func SetupDetectionRouter(dc *controllers.DetectionController) *gin.Engine {
	r := gin.Default()
	r.Use(corsConfig())

	r.GET("/", dc.Root)
	r.GET("/health", dc.Health)

	detect := r.Group("/detect")
	{
		detect.POST("/image", dc.DetectImage)
		detect.POST("/questionnaire/non-diabetic", dc.QuestionnaireNonDiabetic)
		detect.POST("/questionnaire/diabetic", dc.QuestionnaireDiabetic)
		detect.POST("/combined", dc.DetectCombined)
	}

	return r
}

// SetupChatbotRouter wires the chatbot API.
func SetupChatbotRouter(cc *controllers.ChatController) *gin.Engine {
	r := gin.Default()
	r.Use(corsConfig())

	r.GET("/", cc.Root)
	r.GET("/health", cc.Health)
	r.GET("/topics", cc.Topics)
	r.GET("/search", cc.Search)

	chat := r.Group("/chat")
	{
		chat.POST("", cc.Chat)
		chat.POST("/websearch", cc.ChatWebsearch)
		chat.GET("/ws", cc.ChatWS)
		chat.GET("/history/:session_id", cc.ChatHistory)
	}

	return r
}
