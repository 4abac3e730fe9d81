package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDocumentMetrics(reg)
	m.IncFinalized(KindInvoice)
	m.IncFinalized(KindInvoice)
	m.IncRejection(KindPurchaseOrder)
	m.AddUnits("sale", 7)
	m.AddUnits("sale", 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := fetchCounterValue(mfs, "documents_finalized_total", "kind", KindInvoice)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = fetchCounterValue(mfs, "stock_rejections_total", "kind", KindPurchaseOrder)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = fetchCounterValue(mfs, "stock_units_moved_total", "direction", "sale")
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestDocumentMetricsNilSafe(t *testing.T) {
	var m *DocumentMetrics
	assert.NotPanics(t, func() {
		m.IncFinalized(KindInvoice)
		m.IncRejection(KindInvoice)
		m.AddUnits("sale", 1)
	})
	assert.NotPanics(t, func() {
		NewDocumentMetrics(nil).IncFinalized("")
	})
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}
