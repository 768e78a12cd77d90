package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	MessagesProcessed prometheus.Counter
	CommandsProcessed *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec
	ErrorsTotal       *prometheus.CounterVec
	LookupsTotal      *prometheus.CounterVec
	ProfilesCompleted prometheus.Counter
	UsersTotal        prometheus.Gauge
}

// NewMetrics регистрирует метрики в reg. В тестах передаётся отдельный реестр.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "hydro_bot_messages_processed_total",
			Help: "Total number of processed text messages",
		}),

		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hydro_bot_commands_processed_total",
			Help: "Total number of processed commands",
		}, []string{"command"}),

		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hydro_bot_command_duration_seconds",
			Help:    "Duration of command processing",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),

		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hydro_bot_errors_total",
			Help: "Total number of user-facing errors by kind",
		}, []string{"kind"}),

		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hydro_bot_lookups_total",
			Help: "External lookups by service and outcome",
		}, []string{"service", "outcome"}),

		ProfilesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "hydro_bot_profiles_completed_total",
			Help: "Total number of completed profile setups",
		}),

		UsersTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_bot_users_total",
			Help: "Number of users with computed goals",
		}),
	}
}
