package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.CommandsProcessed.WithLabelValues("log_water").Inc()
	m.CommandsProcessed.WithLabelValues("log_water").Inc()
	m.ErrorsTotal.WithLabelValues("validation").Inc()
	m.UsersTotal.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandsProcessed.WithLabelValues("log_water")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("validation")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.UsersTotal))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetricsSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
