// Package metrics exposes Prometheus counters for bot activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	TriggerSlashCommand  = "slash_command"
	TriggerMention       = "mention"
	TriggerDirectMessage = "direct_message"

	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusRejected = "rejected"
)

var (
	// commandsTotal counts inbound Slack triggers.
	// Labels:
	//   - trigger: slash_command, mention, direct_message
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetbot_commands_total",
			Help: "Total number of Slack triggers handled",
		},
		[]string{"trigger"},
	)

	// meetingsTotal counts meeting creation outcomes.
	// Labels:
	//   - status: success, failed, rejected
	meetingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetbot_meetings_total",
			Help: "Total number of meeting creation attempts by outcome",
		},
		[]string{"status"},
	)

	calendarRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meetbot_calendar_request_duration_seconds",
			Help:    "Duration of Google Calendar API calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

func init() {
	prometheus.MustRegister(commandsTotal)
	prometheus.MustRegister(meetingsTotal)
	prometheus.MustRegister(calendarRequestDuration)
}

func RecordCommand(trigger string) {
	commandsTotal.WithLabelValues(trigger).Inc()
}

func RecordMeeting(status string) {
	meetingsTotal.WithLabelValues(status).Inc()
}

func RecordCalendarDuration(seconds float64) {
	calendarRequestDuration.Observe(seconds)
}
