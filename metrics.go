package golay

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts pipeline activity. A nil *Metrics discards all updates.
type Metrics struct {
	Blocks        *prometheus.CounterVec
	ChannelFlips  prometheus.Counter
	CorrectedBits prometheus.Counter
	Uncorrectable *prometheus.CounterVec
}

// NewMetrics creates the pipeline counters and registers them with reg, if
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golay",
			Name:      "blocks_total",
			Help:      "Number of 12 bit blocks sent through the pipeline.",
		}, []string{"mode"}),
		ChannelFlips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golay",
			Name:      "channel_flips_total",
			Help:      "Number of codeword bits flipped by the channel.",
		}),
		CorrectedBits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golay",
			Name:      "corrected_bits_total",
			Help:      "Number of bits changed by syndrome decoding.",
		}),
		Uncorrectable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golay",
			Name:      "uncorrectable_blocks_total",
			Help:      "Number of blocks for which no correction was found.",
		}, []string{"policy"}),
	}
	if reg != nil {
		reg.MustRegister(m.Blocks, m.ChannelFlips, m.CorrectedBits, m.Uncorrectable)
	}
	return m
}

func (m *Metrics) block(mode Mode, flips, corrected int) {
	if m == nil {
		return
	}
	m.Blocks.WithLabelValues(mode.String()).Inc()
	m.ChannelFlips.Add(float64(flips))
	m.CorrectedBits.Add(float64(corrected))
}

func (m *Metrics) uncorrectable(policy UncorrectablePolicy) {
	if m == nil {
		return
	}
	m.Uncorrectable.WithLabelValues(policy.String()).Inc()
}
