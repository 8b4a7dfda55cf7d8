package melcloud

import "fmt"

// ATW zone operation modes.
const (
	AtwZoneOperationModeHeatThermostat = 0
	AtwZoneOperationModeHeatFlow       = 1
	AtwZoneOperationModeCurve          = 2
	AtwZoneOperationModeCoolThermostat = 3
	AtwZoneOperationModeCoolFlow       = 4
)

// AtwDevice is an air-to-water heat pump with one or two zones.
type AtwDevice struct {
	Device
}

// Zone is a heating circuit of an ATW device. Index is 1-based.
type Zone struct {
	device *AtwDevice
	index  int
}

func (d *AtwDevice) Zones() []*Zone {
	zones := []*Zone{{device: d, index: 1}}
	if d.conf.Device.HasZone2 {
		zones = append(zones, &Zone{device: d, index: 2})
	}
	return zones
}

func (d *AtwDevice) TankWaterTemperature() float64 {
	if d.state != nil {
		return d.state.TankWaterTemperature
	}
	return d.conf.Device.TankWaterTemperature
}

func (d *AtwDevice) OutdoorTemperature() float64 {
	if d.state != nil {
		return d.state.OutdoorTemperature
	}
	return d.conf.Device.OutdoorTemperature
}

func (d *AtwDevice) FlowTemperature() float64 {
	return d.conf.Device.FlowTemperature
}

func (d *AtwDevice) ReturnTemperature() float64 {
	return d.conf.Device.ReturnTemperature
}

func (z *Zone) Index() int { return z.index }

func (z *Zone) Name() string {
	var name string
	if z.index == 1 {
		name = z.device.conf.Device.Zone1Name
	} else {
		name = z.device.conf.Device.Zone2Name
	}
	if name == "" {
		name = fmt.Sprintf("Zone %d", z.index)
	}
	return name
}

func (z *Zone) OperationMode() int {
	state := z.device.state
	if state == nil {
		return 0
	}
	if z.index == 1 {
		return state.OperationModeZone1
	}
	return state.OperationModeZone2
}

func (z *Zone) RoomTemperature() float64 {
	state := z.device.state
	if state == nil {
		return 0
	}
	if z.index == 1 {
		return state.RoomTemperatureZone1
	}
	return state.RoomTemperatureZone2
}

func (z *Zone) TargetTemperature() float64 {
	state := z.device.state
	if state == nil {
		return 0
	}
	if z.index == 1 {
		return state.SetTemperatureZone1
	}
	return state.SetTemperatureZone2
}

func (z *Zone) FlowTemperature() float64 {
	if z.index == 1 {
		return z.device.conf.Device.FlowTemperatureZone1
	}
	return z.device.conf.Device.FlowTemperatureZone2
}

func (z *Zone) ReturnTemperature() float64 {
	if z.index == 1 {
		return z.device.conf.Device.ReturnTemperatureZone1
	}
	return z.device.conf.Device.ReturnTemperatureZone2
}

// TargetTemperatureProperty names the Set property for this zone.
func (z *Zone) TargetTemperatureProperty() string {
	if z.index == 1 {
		return PropertyZone1TargetTemperature
	}
	return PropertyZone2TargetTemperature
}

// OperationModeProperty names the Set property for this zone.
func (z *Zone) OperationModeProperty() string {
	if z.index == 1 {
		return PropertyZone1OperationMode
	}
	return PropertyZone2OperationMode
}
