package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/adaptivecare/adaptivecare-api/api/handlers"
	"github.com/adaptivecare/adaptivecare-api/api/scheduler"

	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	a.Initialize() //initialize database, pipeline services and router

	s := scheduler.New(
		&a.Config,
		a.Runner,
		a.Monitor,
		a.Decisions,
		a.Capacity,
		a.Bus,
		a.PatientDB(),
		a.AssessmentDB(),
		a.DecisionDB(),
	)
	s.Start()
	defer s.Stop()

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("adaptivecare-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
