package main

import (
	"os"

	"github.com/zelphyx/Glucoin-AI/config"
	"github.com/zelphyx/Glucoin-AI/controllers"
	"github.com/zelphyx/Glucoin-AI/routes"
	"github.com/zelphyx/Glucoin-AI/services"
)

func main() {
	config.Init()

	groq := services.NewGroqService()
	searcher := services.NewWebSearcher(3)
	agent := services.NewSearchAgent(searcher)
	history := services.NewChatHistoryService(config.DB)

	cc := controllers.NewChatController(groq, agent, history)

	port := os.Getenv("CHATBOT_PORT")
	if port == "" {
		port = "8002"
	}

	r := routes.SetupChatbotRouter(cc)
	r.Run(":" + port)
}
