// Package observability exposes Prometheus collectors for the bot.
//
// Label sets are small and bounded: job names come from the scheduler table,
// message kinds from the Sender port and outcomes from a fixed list.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeHandled      = "handled"
	OutcomeGreeting     = "greeting"
	OutcomeCommand      = "command"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalid      = "invalid"
	OutcomeIgnored      = "ignored"

	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// InboundEvents counts inbound chat events by outcome.
	InboundEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liftotron_inbound_events_total",
			Help: "Inbound chat events by outcome.",
		},
		[]string{"outcome"},
	)

	// OutboundMessages counts delivery attempts by message kind and status.
	OutboundMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liftotron_outbound_messages_total",
			Help: "Outgoing messages by kind and status.",
		},
		[]string{"kind", "status"},
	)

	// JobRuns counts scheduled job executions by job and status.
	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liftotron_job_runs_total",
			Help: "Scheduled job runs by job name and status.",
		},
		[]string{"job", "status"},
	)

	// JobDuration records how long scheduled jobs take, in seconds.
	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "liftotron_job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	RosterSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "liftotron_roster_size",
		Help: "Number of known participants.",
	})

	GreetedSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "liftotron_greeted_size",
		Help: "Number of participants who greeted today.",
	})

	ProcessRSS = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "liftotron_process_rss_bytes",
		Help: "Resident memory of the bot process, sampled by the heartbeat.",
	})

	ProcessCPU = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "liftotron_process_cpu_percent",
		Help: "CPU usage of the bot process, sampled by the heartbeat.",
	})
)

func init() {
	prometheus.MustRegister(InboundEvents, OutboundMessages, JobRuns, JobDuration, RosterSize, GreetedSize, ProcessRSS, ProcessCPU)
}

// ObserveAttendance updates the roster and greeted gauges.
func ObserveAttendance(roster, greeted int) {
	RosterSize.Set(float64(roster))
	GreetedSize.Set(float64(greeted))
}

func ObserveProcess(rss uint64, cpuPercent float64) {
	ProcessRSS.Set(float64(rss))
	ProcessCPU.Set(cpuPercent)
}
