package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// New регистрирует коллекторы в дефолтном реестре, поэтому
	// вызывается один раз за процесс
	m := New()

	assert.NotPanics(t, func() {
		m.UpdatesProcessed.Inc()
		m.ErrorsTotal.Inc()
		m.UpdateProcessingTime.Observe(0.01)
		m.BetsPlaced.WithLabelValues("Лига").Inc()
		m.Registrations.Inc()
		m.MatchesCompleted.Inc()
	})
}
