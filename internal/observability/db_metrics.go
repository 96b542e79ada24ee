package observability

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ObserveDB times one logical store operation and classifies its failure.
// A nil receiver is a no-op so repositories work without metrics in tests.
func (p *Prom) ObserveDB(op string, fn func() error) error {
	if p == nil {
		return fn()
	}

	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil {
		status = "error"
		p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
	}
	p.DbQueryDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	return err
}

func classifyDBErr(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"):
		return "unique_violation"
	case strings.Contains(msg, "foreign key constraint"):
		return "fk_violation"
	case strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy"):
		return "busy"
	case strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column"):
		return "schema"
	default:
		return "unknown"
	}
}
