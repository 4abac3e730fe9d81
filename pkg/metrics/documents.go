package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tipos de documento usados como label "kind".
const (
	KindInvoice       = "invoice"
	KindPurchaseOrder = "purchase_order"
)

// DocumentMetrics contadores de finalización de documentos y rechazos por stock.
// Un *DocumentMetrics nil es válido y no registra nada.
type DocumentMetrics struct {
	finalized  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	units      *prometheus.CounterVec
}

// NewDocumentMetrics registra las métricas en el registerer dado.
func NewDocumentMetrics(reg prometheus.Registerer) *DocumentMetrics {
	if reg == nil {
		return &DocumentMetrics{}
	}
	finalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_finalized_total",
		Help: "Documentos que pasaron a FINALIZED.",
	}, []string{"kind"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_rejections_total",
		Help: "Finalizaciones rechazadas por stock insuficiente o producto inexistente.",
	}, []string{"kind"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_units_moved_total",
		Help: "Unidades de stock movidas por finalización, por dirección.",
	}, []string{"direction"})
	reg.MustRegister(finalized, rejections, units)
	return &DocumentMetrics{
		finalized:  finalized,
		rejections: rejections,
		units:      units,
	}
}

// IncFinalized suma una finalización para el tipo de documento.
func (m *DocumentMetrics) IncFinalized(kind string) {
	if m == nil || m.finalized == nil {
		return
	}
	m.finalized.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncRejection suma un rechazo de stock para el tipo de documento.
func (m *DocumentMetrics) IncRejection(kind string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(kind)).Inc()
}

// AddUnits suma unidades movidas en la dirección dada (sale | replenishment).
func (m *DocumentMetrics) AddUnits(direction string, units int64) {
	if m == nil || m.units == nil || units <= 0 {
		return
	}
	m.units.WithLabelValues(normalizeLabel(direction)).Add(float64(units))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
