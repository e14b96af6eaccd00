package service

import (
	"time"

	"github.com/AlibekovAA/credential-auth/internal/observability/metrics"
)

const (
	outcomeSuccess            = "success"
	outcomeDuplicate          = "duplicate"
	outcomeInvalidCredentials = "invalid_credentials"
	outcomeError              = "error"
)

func recordSignup(outcome string) {
	metrics.SignupsTotal.WithLabelValues(outcome).Inc()
}

func recordSignin(outcome string) {
	metrics.SigninsTotal.WithLabelValues(outcome).Inc()
}

func observeHash(operation string, start time.Time) {
	metrics.PasswordHashDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
