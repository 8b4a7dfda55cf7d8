package melcloud

import (
	"context"
	"fmt"
	"strings"
)

// Property names accepted by Device.Set.
const (
	PropertyPower                  = "power"
	PropertyOperationMode          = "operation_mode"
	PropertyTargetTemperature      = "target_temperature"
	PropertyFanSpeed               = "fan_speed"
	PropertyVaneHorizontal         = "vane_horizontal"
	PropertyVaneVertical           = "vane_vertical"
	PropertyVentilationMode        = "ventilation_mode"
	PropertyZone1OperationMode     = "zone_1_operation_mode"
	PropertyZone2OperationMode     = "zone_2_operation_mode"
	PropertyZone1TargetTemperature = "zone_1_target_temperature"
	PropertyZone2TargetTemperature = "zone_2_target_temperature"
	PropertyTankTargetTemperature  = "tank_target_temperature"
)

// EffectiveFlags bits understood by the Device/Set* endpoints.
const (
	flagPower          int64 = 0x01
	flagOperationMode  int64 = 0x02
	flagTargetTemp     int64 = 0x04
	flagFanSpeed       int64 = 0x08
	flagVaneVertical   int64 = 0x10
	flagVaneHorizontal int64 = 0x100

	flagVentilationMode int64 = 0x04

	flagZone1OperationMode int64 = 0x08
	flagZone2OperationMode int64 = 0x10
	flagZone1TargetTemp    int64 = 0x200000080
	flagZone2TargetTemp    int64 = 0x800000200
	flagTankTargetTemp     int64 = 0x1000000000020
)

// Device is the common surface of the three MELCloud device types.
type Device struct {
	api   API
	conf  *DeviceConf
	state *DeviceState
}

func newDevice(api API, conf *DeviceConf) Device {
	return Device{api: api, conf: conf}
}

// NewDevices wraps the raw device list into typed devices. Entries of an
// unsupported type are skipped.
func NewDevices(api API, confs []*DeviceConf) []TypedDevice {
	var devices []TypedDevice
	for _, conf := range confs {
		switch conf.Type {
		case DeviceTypeAta:
			devices = append(devices, &AtaDevice{Device: newDevice(api, conf)})
		case DeviceTypeAtw:
			devices = append(devices, &AtwDevice{Device: newDevice(api, conf)})
		case DeviceTypeErv:
			devices = append(devices, &ErvDevice{Device: newDevice(api, conf)})
		}
	}
	return devices
}

// TypedDevice is implemented by AtaDevice, AtwDevice and ErvDevice.
type TypedDevice interface {
	Base() *Device
	Type() DeviceType
}

func (d *Device) Base() *Device       { return d }
func (d *Device) Type() DeviceType    { return d.conf.Type }
func (d *Device) DeviceID() int       { return d.conf.DeviceID }
func (d *Device) BuildingID() int     { return d.conf.BuildingID }
func (d *Device) Name() string        { return d.conf.DeviceName }
func (d *Device) Serial() string      { return d.conf.SerialNumber }
func (d *Device) Mac() string         { return d.conf.MacAddress }
func (d *Device) Conf() *DeviceConf   { return d.conf }
func (d *Device) State() *DeviceState { return d.state }

func (d *Device) Power() bool {
	return d.state != nil && d.state.Power
}

func (d *Device) WifiSignal() int {
	return d.conf.Device.WifiSignalStrength
}

func (d *Device) HasError() bool {
	if d.state != nil {
		return d.state.HasError
	}
	return d.conf.Device.HasError
}

func (d *Device) RoomTemperature() float64 {
	if d.state != nil {
		return d.state.RoomTemperature
	}
	return d.conf.Device.RoomTemperature
}

// UnitModels joins the models of the attached units, indoor units first.
func (d *Device) UnitModels() string {
	var indoor, outdoor []string
	for _, u := range d.conf.Device.Units {
		if u.Model == "" {
			continue
		}
		if u.IsIndoor {
			indoor = append(indoor, u.Model)
		} else {
			outdoor = append(outdoor, u.Model)
		}
	}
	return strings.Join(append(indoor, outdoor...), ", ")
}

// Update fetches fresh state from the cloud.
func (d *Device) Update(ctx context.Context) error {
	state, err := d.api.GetDeviceState(ctx, d.conf.DeviceID, d.conf.BuildingID)
	if err != nil {
		return err
	}
	d.state = state
	return nil
}

// Set writes the given properties in a single request. The device must have
// been updated at least once so a full state body is available to patch.
func (d *Device) Set(ctx context.Context, properties map[string]any) error {
	if d.state == nil {
		return fmt.Errorf("melcloud: device %d has no state to patch", d.conf.DeviceID)
	}
	next := *d.state
	next.DeviceID = d.conf.DeviceID
	next.BuildingID = d.conf.BuildingID
	next.DeviceType = d.conf.Type
	next.EffectiveFlags = 0
	for name, value := range properties {
		if err := applyProperty(&next, d.conf.Type, name, value); err != nil {
			return err
		}
	}
	updated, err := d.api.SetDeviceState(ctx, &next)
	if err != nil {
		return err
	}
	d.state = updated
	return nil
}

func applyProperty(state *DeviceState, deviceType DeviceType, name string, value any) error {
	switch name {
	case PropertyPower:
		v, ok := value.(bool)
		if !ok {
			return propertyTypeError(name, value, "bool")
		}
		state.Power = v
		state.EffectiveFlags |= flagPower
	case PropertyOperationMode:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.OperationMode = v
		state.EffectiveFlags |= flagOperationMode
	case PropertyTargetTemperature:
		v, ok := value.(float64)
		if !ok {
			return propertyTypeError(name, value, "float64")
		}
		state.SetTemperature = v
		state.EffectiveFlags |= flagTargetTemp
	case PropertyFanSpeed:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.SetFanSpeed = v
		state.EffectiveFlags |= flagFanSpeed
	case PropertyVaneVertical:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.VaneVertical = v
		state.EffectiveFlags |= flagVaneVertical
	case PropertyVaneHorizontal:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.VaneHorizontal = v
		state.EffectiveFlags |= flagVaneHorizontal
	case PropertyVentilationMode:
		if deviceType != DeviceTypeErv {
			return fmt.Errorf("melcloud: property %q is only valid for erv devices", name)
		}
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.VentilationMode = v
		state.EffectiveFlags |= flagVentilationMode
	case PropertyZone1OperationMode:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.OperationModeZone1 = v
		state.EffectiveFlags |= flagZone1OperationMode
	case PropertyZone2OperationMode:
		v, ok := value.(int)
		if !ok {
			return propertyTypeError(name, value, "int")
		}
		state.OperationModeZone2 = v
		state.EffectiveFlags |= flagZone2OperationMode
	case PropertyZone1TargetTemperature:
		v, ok := value.(float64)
		if !ok {
			return propertyTypeError(name, value, "float64")
		}
		state.SetTemperatureZone1 = v
		state.EffectiveFlags |= flagZone1TargetTemp
	case PropertyZone2TargetTemperature:
		v, ok := value.(float64)
		if !ok {
			return propertyTypeError(name, value, "float64")
		}
		state.SetTemperatureZone2 = v
		state.EffectiveFlags |= flagZone2TargetTemp
	case PropertyTankTargetTemperature:
		v, ok := value.(float64)
		if !ok {
			return propertyTypeError(name, value, "float64")
		}
		state.SetTankWaterTemperature = v
		state.EffectiveFlags |= flagTankTargetTemp
	default:
		return fmt.Errorf("melcloud: unknown property %q", name)
	}
	return nil
}

func propertyTypeError(name string, value any, want string) error {
	return fmt.Errorf("melcloud: property %q wants a %s, got %T", name, want, value)
}
