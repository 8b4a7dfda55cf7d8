package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "melcloud2mqtt"

var (
	// PollCycles counts completed device refresh cycles.
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_cycles_total",
		Help:      "Number of completed MELCloud refresh cycles.",
	})

	// CloudRequests counts cloud operations by kind.
	CloudRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cloud_requests_total",
		Help:      "Number of MELCloud operations.",
	}, []string{"operation"})

	// CloudErrors counts failed cloud operations by kind.
	CloudErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cloud_errors_total",
		Help:      "Number of failed MELCloud operations.",
	}, []string{"operation"})

	// Commands counts entity commands received over MQTT by component.
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Number of entity commands applied.",
	}, []string{"component"})

	// RoomTemperature reports the last polled room temperature per entity.
	RoomTemperature = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "room_temperature_celsius",
		Help:      "Room temperature reported by the device on the last refresh.",
	}, []string{"entity"})

	// DeviceAvailable reports per device whether the cloud reaches it.
	DeviceAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "device_available",
		Help:      "1 when the device is reachable through MELCloud, 0 otherwise.",
	}, []string{"device"})
)

func SetDeviceAvailable(device string, available bool) {
	if available {
		DeviceAvailable.WithLabelValues(device).Set(1)
	} else {
		DeviceAvailable.WithLabelValues(device).Set(0)
	}
}
