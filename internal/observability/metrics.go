package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SignalsRelayed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "signaling_messages_relayed_total",
	Help: "Signaling messages forwarded between paired peers.",
})

// RegisterSessionGauges exposes live room and connection counts. Call once
// at startup.
func RegisterSessionGauges(roomCount, connectionCount func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "signaling_active_rooms",
		Help: "Rooms currently present in the room table.",
	}, func() float64 { return float64(roomCount()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "signaling_active_connections",
		Help: "Currently registered websocket connections.",
	}, func() float64 { return float64(connectionCount()) })
}
