package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"jobmatcher/auth"
	"jobmatcher/infrastructure"
	"jobmatcher/interfaces"
	"jobmatcher/matcher"
)

const tokenExpiry = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := infrastructure.NewMySQLConnection()
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	// The embedding client is created once at startup; a load failure is
	// fatal rather than deferred to the first match request.
	embedder, err := infrastructure.NewGeminiEmbedder(context.Background())
	if err != nil {
		log.WithError(err).Fatal("failed to create embedding client")
	}

	rmq, err := infrastructure.NewRabbitMQ()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set in environment")
	}

	router := gin.Default()
	interfaces.NewHTTPHandler(router, &interfaces.HTTPHandler{
		Users:   infrastructure.NewUserStore(db),
		Jobs:    infrastructure.NewJobDescriptionStore(db),
		Resumes: infrastructure.NewResumeStore(db),
		Matches: infrastructure.NewMatchStore(db),
		Scorer:  matcher.NewScorer(embedder),
		Extract: infrastructure.ExtractTextFromFile,
		Tokens:  auth.NewTokenIssuer("jobmatcher", secret, tokenExpiry),
		Verify:  auth.NewTokenVerifier(secret),
		Events:  rmq,
		Log:     log,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("server starting")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
