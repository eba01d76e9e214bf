package main

import (
	"os"

	"github.com/zelphyx/Glucoin-AI/config"
	"github.com/zelphyx/Glucoin-AI/controllers"
	"github.com/zelphyx/Glucoin-AI/routes"
	"github.com/zelphyx/Glucoin-AI/services"
	"github.com/zelphyx/Glucoin-AI/utils"
)

func main() {
	config.Init()
	utils.InitS3()

	classifier := services.NewClassifierService()
	dc := controllers.NewDetectionController(classifier)

	port := os.Getenv("DETECTION_PORT")
	if port == "" {
		port = "8001"
	}

	r := routes.SetupDetectionRouter(dc)
	r.Run(":" + port)
}
