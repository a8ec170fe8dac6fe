package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds counters for the image pipeline. A nil *Metrics records nothing.
type Metrics struct {
	imagesStored *prometheus.CounterVec
}

// NewMetrics registers the service counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		imagesStored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_images_stored_total",
				Help: "Uploaded images by outcome (stored, rejected, failed).",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(m.imagesStored); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) imageResult(result string) {
	if m == nil {
		return
	}
	m.imagesStored.WithLabelValues(result).Inc()
}
