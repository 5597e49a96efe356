package observability

import (
	"strings"
	"testing"
)

func TestCounterNilSafe(t *testing.T) {
	var c *Counter
	c.Inc()
	if c.Value() != 0 {
		t.Fatalf("nil counter value = %f", c.Value())
	}
	var b strings.Builder
	if err := c.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("nil counter wrote output: %q", b.String())
	}
}

func TestCounterExposition(t *testing.T) {
	c := NewCounter("pw_test_total", "Test counter.")
	c.Inc()
	c.Inc()
	if c.Value() != 2 {
		t.Fatalf("value = %f, want 2", c.Value())
	}
	var b strings.Builder
	if err := c.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"# HELP pw_test_total Test counter.",
		"# TYPE pw_test_total counter",
		"pw_test_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCounterVecLabels(t *testing.T) {
	c := NewCounterVec("pw_unlock_checks_total", "Unlock checks.", []string{"outcome"})
	c.Inc("unlocked")
	c.Inc("unlocked")
	c.Inc("locked")

	var b strings.Builder
	if err := c.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `pw_unlock_checks_total{outcome="unlocked"} 2`) {
		t.Fatalf("missing unlocked series in:\n%s", out)
	}
	if !strings.Contains(out, `pw_unlock_checks_total{outcome="locked"} 1`) {
		t.Fatalf("missing locked series in:\n%s", out)
	}
}

func TestCounterVecMissingLabelValue(t *testing.T) {
	c := NewCounterVec("pw_test_total", "Test counter.", []string{"method", "route"})
	c.Inc("GET")

	var b strings.Builder
	if err := c.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if !strings.Contains(b.String(), `{method="GET",route="unknown"}`) {
		t.Fatalf("missing label values must render as unknown:\n%s", b.String())
	}
}

func TestGaugeIncDecSet(t *testing.T) {
	g := NewGauge("pw_inflight", "Inflight requests.")
	g.Inc()
	g.Inc()
	g.Dec()
	var b strings.Builder
	if err := g.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if !strings.Contains(b.String(), "pw_inflight 1") {
		t.Fatalf("gauge = %s", b.String())
	}

	g.Set(7)
	b.Reset()
	if err := g.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if !strings.Contains(b.String(), "pw_inflight 7") {
		t.Fatalf("gauge = %s", b.String())
	}
}

func TestHistogramVecBuckets(t *testing.T) {
	h := NewHistogramVec("pw_latency_seconds", "Latency.", []string{"route"}, []float64{0.1, 1})
	h.Observe(0.05, "/api/pathways")
	h.Observe(0.5, "/api/pathways")
	h.Observe(5, "/api/pathways")

	var b strings.Builder
	if err := h.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		`pw_latency_seconds_bucket{route="/api/pathways",le="0.1"} 1`,
		`pw_latency_seconds_bucket{route="/api/pathways",le="1"} 2`,
		`pw_latency_seconds_bucket{route="/api/pathways",le="+Inf"} 3`,
		`pw_latency_seconds_count{route="/api/pathways"} 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestEscapeLabel(t *testing.T) {
	if got := escapeLabel(`a"b\c`); got != `a\"b\\c` {
		t.Fatalf("escapeLabel = %q", got)
	}
}
