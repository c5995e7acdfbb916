package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SlotMetrics counts what the timeline engine does: frames opened and
// closed, writes rejected by validation rule, renewals and how far each
// end date cascade fans out.
type SlotMetrics struct {
	SlotsCreatedTotal prometheus.CounterVec

	FramesOpenedTotal prometheus.CounterVec
	FramesClosedTotal prometheus.CounterVec

	SlotRejectionsTotal  prometheus.CounterVec
	FrameRejectionsTotal prometheus.CounterVec

	RenewalsTotal prometheus.CounterVec
	CascadeFanout prometheus.Histogram

	PurchaseRequiredTotal prometheus.Counter
}

func NewSlotMetrics() *SlotMetrics {
	return &SlotMetrics{
		SlotsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slots_created_total",
				Help: "Slots created, by site and lineage role",
			},
			[]string{"site_id", "role"},
		),

		FramesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_time_frames_opened_total",
				Help: "Time frames opened, by site",
			},
			[]string{"site_id"},
		),

		FramesClosedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_time_frames_closed_total",
				Help: "Time frames closed",
			},
			[]string{},
		),

		SlotRejectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_writes_rejected_total",
				Help: "Slot writes rejected, by violated invariant rule",
			},
			[]string{"rule"},
		),

		FrameRejectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_time_frame_writes_rejected_total",
				Help: "Time frame writes rejected, by interval conflict rule",
			},
			[]string{"rule"},
		),

		RenewalsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_renewals_total",
				Help: "Slot renewals, by site and autorenew origin",
			},
			[]string{"site_id", "autorenew"},
		),

		CascadeFanout: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "slot_cascade_fanout",
				Help:    "Children updated per end date cascade",
				Buckets: prometheus.LinearBuckets(0, 1, 10),
			},
		),

		PurchaseRequiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "display_purchase_required_total",
				Help: "Display-on attempts with every family full",
			},
		),
	}
}

func (m *SlotMetrics) RecordSlotCreated(siteID int64, role string) {
	m.SlotsCreatedTotal.WithLabelValues(strconv.FormatInt(siteID, 10), role).Inc()
}

func (m *SlotMetrics) RecordFrameOpened(siteID int64) {
	m.FramesOpenedTotal.WithLabelValues(strconv.FormatInt(siteID, 10)).Inc()
}

func (m *SlotMetrics) RecordFrameClosed() {
	m.FramesClosedTotal.WithLabelValues().Inc()
}

func (m *SlotMetrics) RecordSlotRejected(rule string) {
	m.SlotRejectionsTotal.WithLabelValues(rule).Inc()
}

func (m *SlotMetrics) RecordFrameRejected(rule string) {
	m.FrameRejectionsTotal.WithLabelValues(rule).Inc()
}

func (m *SlotMetrics) RecordRenewal(siteID int64, autorenew bool) {
	m.RenewalsTotal.WithLabelValues(strconv.FormatInt(siteID, 10), strconv.FormatBool(autorenew)).Inc()
}

func (m *SlotMetrics) RecordCascadeFanout(children int) {
	m.CascadeFanout.Observe(float64(children))
}

func (m *SlotMetrics) RecordPurchaseRequired() {
	m.PurchaseRequiredTotal.Inc()
}
