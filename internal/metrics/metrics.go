package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermanager"

const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeLocked             = "locked"
	OutcomeLockedNow          = "locked_now"
	OutcomeError              = "error"
)

var loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "auth",
	Name:      "login_attempts_total",
	Help:      "Login attempts by outcome.",
}, []string{"outcome"})

var registrations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "auth",
	Name:      "registrations_total",
	Help:      "Successfully registered users.",
})

func LoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func Registration() {
	registrations.Inc()
}
