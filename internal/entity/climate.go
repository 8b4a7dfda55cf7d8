package entity

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

// HVAC mode vocabulary.
const (
	HVACModeOff      = "off"
	HVACModeHeat     = "heat"
	HVACModeDry      = "dry"
	HVACModeCool     = "cool"
	HVACModeFanOnly  = "fan_only"
	HVACModeHeatCool = "heat_cool"
)

const FanModeAuto = "auto"

var ataHVACModes = NewTable(map[int]string{
	melcloud.AtaOperationModeHeat:     HVACModeHeat,
	melcloud.AtaOperationModeDry:      HVACModeDry,
	melcloud.AtaOperationModeCool:     HVACModeCool,
	melcloud.AtaOperationModeFanOnly:  HVACModeFanOnly,
	melcloud.AtaOperationModeHeatCool: HVACModeHeatCool,
})

var verticalVanes = NewTable(map[int]string{
	melcloud.VanePositionAuto:  "VerticalAuto",
	1:                          "VerticalTop",
	2:                          "VerticalMiddleTop",
	3:                          "VerticalMiddle",
	4:                          "VerticalMiddleBottom",
	5:                          "VerticalBottom",
	melcloud.VaneVerticalSwing: "VerticalSwing",
})

var horizontalVanes = NewTable(map[int]string{
	melcloud.VanePositionAuto:    "HorizontalAuto",
	1:                            "HorizontalLeft",
	2:                            "HorizontalMiddleLeft",
	3:                            "HorizontalMiddle",
	4:                            "HorizontalMiddleRight",
	5:                            "HorizontalRight",
	melcloud.VanePositionSplit:   "HorizontalSplit",
	melcloud.VaneHorizontalSwing: "HorizontalSwing",
})

var atwZoneHVACModes = NewTable(map[int]string{
	melcloud.AtwZoneOperationModeHeatThermostat: HVACModeHeat,
	melcloud.AtwZoneOperationModeCoolThermostat: HVACModeCool,
})

// AtaClimate translates an air-to-air device into climate vocabulary.
type AtaClimate struct {
	wrapper *device.Wrapper
	dev     *melcloud.AtaDevice

	supportVerSwing bool
	supportHorSwing bool
	// which axis the last swing command targeted; reads prefer it
	setHorSwing bool
}

func NewAtaClimate(wrapper *device.Wrapper) *AtaClimate {
	dev := wrapper.Device().(*melcloud.AtaDevice)
	supportVer := len(dev.VaneVerticalPositions()) > 0
	supportHor := len(dev.VaneHorizontalPositions()) > 0
	return &AtaClimate{
		wrapper:         wrapper,
		dev:             dev,
		supportVerSwing: supportVer,
		supportHorSwing: supportHor,
		setHorSwing:     supportHor && !supportVer,
	}
}

func (c *AtaClimate) Name() string     { return c.dev.Name() }
func (c *AtaClimate) UniqueID() string { return c.wrapper.UniqueID() }
func (c *AtaClimate) Available() bool  { return c.wrapper.Available() }

// HVACMode is "off" whenever power is off, regardless of the remembered
// operation mode.
func (c *AtaClimate) HVACMode() string {
	if !c.dev.Power() {
		return HVACModeOff
	}
	name, ok := ataHVACModes.Name(c.dev.OperationMode())
	if !ok {
		return HVACModeHeatCool
	}
	return name
}

func (c *AtaClimate) HVACModes() []string {
	return append([]string{HVACModeOff}, ataHVACModes.Names(c.dev.OperationModes())...)
}

// SetHVACMode writes the mode, powering the unit on when it was off. "off"
// only clears power and leaves the remembered mode alone.
func (c *AtaClimate) SetHVACMode(ctx context.Context, mode string) error {
	if mode == HVACModeOff {
		return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: false})
	}
	code, ok := ataHVACModes.Code(mode)
	if !ok {
		return fmt.Errorf("%w: hvac mode %q", ErrInvalidValue, mode)
	}
	props := map[string]any{melcloud.PropertyOperationMode: code}
	if c.HVACMode() == HVACModeOff {
		props[melcloud.PropertyPower] = true
	}
	return c.wrapper.Set(ctx, props)
}

func (c *AtaClimate) CurrentTemperature() float64 { return c.dev.RoomTemperature() }
func (c *AtaClimate) TargetTemperature() float64  { return c.dev.TargetTemperature() }
func (c *AtaClimate) TargetTemperatureStep() float64 {
	return c.dev.TargetTemperatureStep()
}
func (c *AtaClimate) MinTemp() float64 { return c.dev.TargetTemperatureMin() }
func (c *AtaClimate) MaxTemp() float64 { return c.dev.TargetTemperatureMax() }

func (c *AtaClimate) SetTargetTemperature(ctx context.Context, value float64) error {
	if value < c.MinTemp() || value > c.MaxTemp() {
		return fmt.Errorf("%w: temperature %.1f outside [%.1f, %.1f]",
			ErrInvalidValue, value, c.MinTemp(), c.MaxTemp())
	}
	return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyTargetTemperature: value})
}

// FanMode is the named speed, "auto" for automatic.
func (c *AtaClimate) FanMode() string {
	speed := c.dev.FanSpeed()
	if speed == 0 {
		return FanModeAuto
	}
	return strconv.Itoa(speed)
}

func (c *AtaClimate) FanModes() []string {
	speeds := c.dev.FanSpeeds()
	modes := make([]string, 0, len(speeds))
	for _, speed := range speeds {
		if speed == 0 {
			modes = append(modes, FanModeAuto)
		} else {
			modes = append(modes, strconv.Itoa(speed))
		}
	}
	return modes
}

func (c *AtaClimate) SetFanMode(ctx context.Context, mode string) error {
	var speed int
	if mode == FanModeAuto {
		speed = 0
	} else {
		parsed, err := strconv.Atoi(mode)
		if err != nil {
			return fmt.Errorf("%w: fan mode %q", ErrInvalidValue, mode)
		}
		speed = parsed
	}
	if !slices.Contains(c.dev.FanSpeeds(), speed) {
		return fmt.Errorf("%w: fan mode %q", ErrInvalidValue, mode)
	}
	return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyFanSpeed: speed})
}

// SwingMode reads the axis the last swing command targeted, vertical by
// default.
func (c *AtaClimate) SwingMode() string {
	if c.setHorSwing && c.supportHorSwing {
		if name, ok := horizontalVanes.Name(c.dev.VaneHorizontal()); ok {
			return name
		}
	} else if c.supportVerSwing {
		if name, ok := verticalVanes.Name(c.dev.VaneVertical()); ok {
			return name
		}
	}
	return "Auto"
}

func (c *AtaClimate) SwingModes() []string {
	modes := verticalVanes.Names(c.dev.VaneVerticalPositions())
	return append(modes, horizontalVanes.Names(c.dev.VaneHorizontalPositions())...)
}

// SetSwingMode resolves the name against both axes, validates it against the
// positions the unit reports, and skips the write when the vane is already
// there.
func (c *AtaClimate) SetSwingMode(ctx context.Context, mode string) error {
	var (
		position int
		current  int
		valid    []int
		property string
		horSwing bool
	)
	if code, ok := verticalVanes.Code(mode); ok {
		position = code
		current = c.dev.VaneVertical()
		valid = c.dev.VaneVerticalPositions()
		property = melcloud.PropertyVaneVertical
	} else if code, ok := horizontalVanes.Code(mode); ok {
		position = code
		current = c.dev.VaneHorizontal()
		valid = c.dev.VaneHorizontalPositions()
		property = melcloud.PropertyVaneHorizontal
		horSwing = true
	} else {
		return fmt.Errorf("%w: swing mode %q", ErrInvalidValue, mode)
	}
	if !slices.Contains(valid, position) {
		return fmt.Errorf("%w: swing mode %q", ErrInvalidValue, mode)
	}
	c.setHorSwing = horSwing
	if current == position {
		return nil
	}
	return c.wrapper.Set(ctx, map[string]any{property: position})
}

func (c *AtaClimate) TurnOn(ctx context.Context) error {
	return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: true})
}

func (c *AtaClimate) TurnOff(ctx context.Context) error {
	return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: false})
}

// ExtraAttributes reports the vane positions by name alongside the device
// identity attributes.
func (c *AtaClimate) ExtraAttributes() map[string]any {
	attrs := c.wrapper.ExtraAttributes()
	if name, ok := verticalVanes.Name(c.dev.VaneVertical()); ok {
		attrs["vane_vertical"] = name
	}
	if name, ok := horizontalVanes.Name(c.dev.VaneHorizontal()); ok {
		attrs["vane_horizontal"] = name
	}
	return attrs
}

// AtwZoneClimate translates one zone of an air-to-water device.
type AtwZoneClimate struct {
	wrapper *device.Wrapper
	dev     *melcloud.AtwDevice
	zone    *melcloud.Zone
}

func NewAtwZoneClimate(wrapper *device.Wrapper, zone *melcloud.Zone) *AtwZoneClimate {
	return &AtwZoneClimate{
		wrapper: wrapper,
		dev:     wrapper.Device().(*melcloud.AtwDevice),
		zone:    zone,
	}
}

func (c *AtwZoneClimate) Name() string {
	return fmt.Sprintf("%s %s", c.dev.Name(), c.zone.Name())
}

func (c *AtwZoneClimate) UniqueID() string {
	return c.wrapper.ZoneUniqueID(c.zone)
}

func (c *AtwZoneClimate) Available() bool { return c.wrapper.Available() }

func (c *AtwZoneClimate) HVACMode() string {
	if !c.dev.Power() {
		return HVACModeOff
	}
	name, ok := atwZoneHVACModes.Name(c.zone.OperationMode())
	if !ok {
		return HVACModeOff
	}
	return name
}

func (c *AtwZoneClimate) HVACModes() []string {
	return []string{c.HVACMode()}
}

func (c *AtwZoneClimate) SetHVACMode(ctx context.Context, mode string) error {
	if mode == HVACModeOff {
		return c.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: false})
	}
	code, ok := atwZoneHVACModes.Code(mode)
	if !ok {
		return fmt.Errorf("%w: hvac mode %q", ErrInvalidValue, mode)
	}
	props := map[string]any{c.zone.OperationModeProperty(): code}
	if c.HVACMode() == HVACModeOff {
		props[melcloud.PropertyPower] = true
	}
	return c.wrapper.Set(ctx, props)
}

func (c *AtwZoneClimate) CurrentTemperature() float64 { return c.zone.RoomTemperature() }
func (c *AtwZoneClimate) TargetTemperature() float64  { return c.zone.TargetTemperature() }
func (c *AtwZoneClimate) MinTemp() float64            { return 10 }
func (c *AtwZoneClimate) MaxTemp() float64            { return 30 }

func (c *AtwZoneClimate) SetTargetTemperature(ctx context.Context, value float64) error {
	if value < c.MinTemp() || value > c.MaxTemp() {
		return fmt.Errorf("%w: temperature %.1f outside [%.1f, %.1f]",
			ErrInvalidValue, value, c.MinTemp(), c.MaxTemp())
	}
	return c.wrapper.Set(ctx, map[string]any{c.zone.TargetTemperatureProperty(): value})
}

// ExtraAttributes reports the raw zone operation mode as status.
func (c *AtwZoneClimate) ExtraAttributes() map[string]any {
	attrs := c.wrapper.ExtraAttributes()
	if name, ok := atwZoneHVACModes.Name(c.zone.OperationMode()); ok {
		attrs["status"] = name
	}
	return attrs
}
