package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAreIndependentPerInstance(t *testing.T) {
	a := New()
	b := New()

	a.Claims.WithLabelValues("claimed").Inc()
	a.Claims.WithLabelValues("claimed").Inc()
	a.Comments.Inc()

	if got := testutil.ToFloat64(a.Claims.WithLabelValues("claimed")); got != 2 {
		t.Fatalf("claims = %v", got)
	}
	if got := testutil.ToFloat64(b.Claims.WithLabelValues("claimed")); got != 0 {
		t.Fatalf("second registry saw %v claims", got)
	}
	if got := testutil.ToFloat64(a.Comments); got != 1 {
		t.Fatalf("comments = %v", got)
	}
}
