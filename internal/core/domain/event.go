package domain

import "fmt"

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type BinarySensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

// AvailabilityUpdateEvent flips the per-entity availability topic.
type AvailabilityUpdateEvent struct {
	SensorUpdateEventMixIn
	Component string
	Available bool
}

// ClimateStateUpdateEvent carries the whole published state of a climate
// entity.
type ClimateStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Mode               string
	CurrentTemperature float64
	TargetTemperature  float64
	FanMode            string
	SwingMode          string
}

// FanStateUpdateEvent carries the published state of a ventilator fan.
type FanStateUpdateEvent struct {
	SensorUpdateEventMixIn
	On         bool
	Percentage int
	PresetMode string
}

// SelectStateUpdateEvent carries the current option of a select entity.
type SelectStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Option string
}
