package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	JWTSecret    string
	SendGridKey  string
	AlertEmail   string

	// Pipeline tuning
	TickInterval time.Duration
	MCDAProfile  string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SendGridKey:  os.Getenv("SENDGRID_API_KEY"),
		AlertEmail:   os.Getenv("ESCALATION_ALERT_EMAIL"),
		TickInterval: envDuration("PIPELINE_TICK_SECONDS", 60*time.Second),
		MCDAProfile:  os.Getenv("MCDA_PROFILE"),
	}

}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		zap.S().Warnf("invalid %s=%q, using default of %v", key, raw, fallback)
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errorMessage := models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: fmt.Sprint(err)}}
	b, _ := json.Marshal(errorMessage)
	w.Write(b)
}
