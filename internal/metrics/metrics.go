package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exposed on the /metrics endpoint.
var (
	QuestionsPosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vocabot",
		Name:      "questions_posed_total",
		Help:      "Quiz questions sent to chats.",
	})

	AnswersGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vocabot",
		Name:      "answers_graded_total",
		Help:      "Incoming messages graded, by verdict.",
	}, []string{"verdict"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vocabot",
		Name:      "active_sessions",
		Help:      "Chats with a recurring quiz currently scheduled.",
	})
)
