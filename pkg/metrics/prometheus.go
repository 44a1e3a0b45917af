package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "romiio_bot"

// Metrics holds the prometheus collectors of the bot
type Metrics struct {
	Registry         *prometheus.Registry
	MessagesReceived *prometheus.CounterVec
	RepliesSent      prometheus.Counter
	RepliesFailed    prometheus.Counter
	Transitions      *prometheus.CounterVec
	HandlerFaults    prometheus.Counter
	RateLimited      prometheus.Counter
	BookingEvents    *prometheus.CounterVec
	ProcessingTime   prometheus.Histogram
}

// NewMetrics registers the collectors on a dedicated registry so tests can
// build as many instances as they need.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "The total number of inbound customer messages",
		}, []string{"source"}),
		RepliesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_sent_total",
			Help:      "The total number of replies delivered to WhatsApp",
		}),
		RepliesFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_failed_total",
			Help:      "The total number of replies WhatsApp rejected",
		}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Conversation rule matches by rule name",
		}, []string{"rule"}),
		HandlerFaults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_faults_total",
			Help:      "Messages answered with the apology after a fault",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Inbound messages dropped by the per customer limiter",
		}),
		BookingEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events by type",
		}, []string{"event"}),
		ProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_processing_seconds",
			Help:      "Time taken to handle one inbound message",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
