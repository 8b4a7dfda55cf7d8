package entity

import (
	"fmt"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

// Units and classes used by the sensor descriptors.
const (
	UnitCelsius = "°C"
	UnitDBm     = "dBm"
	UnitKWh     = "kWh"

	DeviceClassTemperature    = "temperature"
	DeviceClassSignalStrength = "signal_strength"
	DeviceClassEnergy         = "energy"
	DeviceClassProblem        = "problem"

	StateClassMeasurement     = "measurement"
	StateClassTotalIncreasing = "total_increasing"
)

// SensorDescriptor declares one sensor of a device type. Enabled gates the
// sensor at setup time; Value reads the current reading.
type SensorDescriptor struct {
	Key         string
	Name        string
	Icon        string
	Unit        string
	DeviceClass string
	StateClass  string
	Enabled     func() bool
	Value       func() float64
}

// Sensor is a materialized sensor bound to one device.
type Sensor struct {
	SensorDescriptor
	wrapper *device.Wrapper
	name    string
	id      string
}

func (s *Sensor) Name() string     { return s.name }
func (s *Sensor) UniqueID() string { return s.id }
func (s *Sensor) Available() bool  { return s.wrapper.Available() }

func newSensor(wrapper *device.Wrapper, desc SensorDescriptor) *Sensor {
	return &Sensor{
		SensorDescriptor: desc,
		wrapper:          wrapper,
		name:             fmt.Sprintf("%s %s", wrapper.Device().Base().Name(), desc.Name),
		id:               fmt.Sprintf("%s-%s", wrapper.UniqueID(), desc.Key),
	}
}

func newZoneSensor(wrapper *device.Wrapper, zone *melcloud.Zone, desc SensorDescriptor) *Sensor {
	return &Sensor{
		SensorDescriptor: desc,
		wrapper:          wrapper,
		name: fmt.Sprintf("%s %s %s",
			wrapper.Device().Base().Name(), zone.Name(), desc.Name),
		id: fmt.Sprintf("%s-%s", wrapper.ZoneUniqueID(zone), desc.Key),
	}
}

func alwaysEnabled() bool { return true }

// AtaSensors builds the sensors of an air-to-air device, skipping the ones
// whose Enabled predicate rejects the unit.
func AtaSensors(wrapper *device.Wrapper) []*Sensor {
	dev := wrapper.Device().(*melcloud.AtaDevice)
	descriptors := []SensorDescriptor{
		{
			Key:         "wifi_signal",
			Name:        "WiFi Signal",
			Icon:        "mdi:signal",
			Unit:        UnitDBm,
			DeviceClass: DeviceClassSignalStrength,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       func() float64 { return float64(dev.WifiSignal()) },
		},
		{
			Key:         "room_temperature",
			Name:        "Room Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       dev.RoomTemperature,
		},
		{
			Key:         "energy",
			Name:        "Energy",
			Icon:        "mdi:factory",
			Unit:        UnitKWh,
			DeviceClass: DeviceClassEnergy,
			StateClass:  StateClassTotalIncreasing,
			Enabled:     dev.HasEnergyConsumedMeter,
			Value:       dev.TotalEnergyConsumed,
		},
	}
	return materialize(wrapper, descriptors)
}

// AtwSensors builds the device level sensors of an air-to-water device.
func AtwSensors(wrapper *device.Wrapper) []*Sensor {
	dev := wrapper.Device().(*melcloud.AtwDevice)
	descriptors := []SensorDescriptor{
		{
			Key:         "outside_temperature",
			Name:        "Outside Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       dev.OutdoorTemperature,
		},
		{
			Key:         "tank_temperature",
			Name:        "Tank Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       dev.TankWaterTemperature,
		},
	}
	return materialize(wrapper, descriptors)
}

// AtwZoneSensors builds the per-zone sensors of an air-to-water device.
func AtwZoneSensors(wrapper *device.Wrapper, zone *melcloud.Zone) []*Sensor {
	descriptors := []SensorDescriptor{
		{
			Key:         "room_temperature",
			Name:        "Room Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       zone.RoomTemperature,
		},
		{
			Key:         "flow_temperature",
			Name:        "Flow Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       zone.FlowTemperature,
		},
		{
			Key:         "return_temperature",
			Name:        "Flow Return Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       zone.ReturnTemperature,
		},
	}
	var sensors []*Sensor
	for _, desc := range descriptors {
		if desc.Enabled() {
			sensors = append(sensors, newZoneSensor(wrapper, zone, desc))
		}
	}
	return sensors
}

// ErvSensors builds the sensors of a ventilator.
func ErvSensors(wrapper *device.Wrapper) []*Sensor {
	dev := wrapper.Device().(*melcloud.ErvDevice)
	descriptors := []SensorDescriptor{
		{
			Key:         "wifi_signal",
			Name:        "WiFi Signal",
			Icon:        "mdi:signal",
			Unit:        UnitDBm,
			DeviceClass: DeviceClassSignalStrength,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       func() float64 { return float64(dev.WifiSignal()) },
		},
		{
			Key:         "room_temperature",
			Name:        "Room Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       dev.RoomTemperature,
		},
		{
			Key:         "outside_temperature",
			Name:        "Outside Temperature",
			Icon:        "mdi:thermometer",
			Unit:        UnitCelsius,
			DeviceClass: DeviceClassTemperature,
			StateClass:  StateClassMeasurement,
			Enabled:     alwaysEnabled,
			Value:       dev.OutdoorTemperature,
		},
		{
			Key:         "energy",
			Name:        "Energy",
			Icon:        "mdi:factory",
			Unit:        UnitKWh,
			DeviceClass: DeviceClassEnergy,
			StateClass:  StateClassTotalIncreasing,
			Enabled:     dev.HasEnergyConsumedMeter,
			Value:       dev.TotalEnergyConsumed,
		},
	}
	return materialize(wrapper, descriptors)
}

func materialize(wrapper *device.Wrapper, descriptors []SensorDescriptor) []*Sensor {
	var sensors []*Sensor
	for _, desc := range descriptors {
		if desc.Enabled() {
			sensors = append(sensors, newSensor(wrapper, desc))
		}
	}
	return sensors
}

// BinarySensor reports a boolean condition of a device.
type BinarySensor struct {
	wrapper     *device.Wrapper
	Key         string
	DeviceClass string
	Value       func() bool
	name        string
	id          string
}

func (s *BinarySensor) Name() string     { return s.name }
func (s *BinarySensor) UniqueID() string { return s.id }
func (s *BinarySensor) Available() bool  { return s.wrapper.Available() }

// ErrorStateBinarySensor reports the device error flag.
func ErrorStateBinarySensor(wrapper *device.Wrapper) *BinarySensor {
	base := wrapper.Device().Base()
	return &BinarySensor{
		wrapper:     wrapper,
		Key:         "error_state",
		DeviceClass: DeviceClassProblem,
		Value:       base.HasError,
		name:        fmt.Sprintf("%s Error State", base.Name()),
		id:          fmt.Sprintf("%s-error_state", wrapper.UniqueID()),
	}
}
