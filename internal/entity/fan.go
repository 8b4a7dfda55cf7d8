package entity

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

// orderedFanSpeeds are the named preset speeds; "off" is expressed as 0%.
var orderedFanSpeeds = []string{"1", "2", "3", "4"}

// orderedListItemToPercentage maps a list item to the upper bound of its
// evenly spaced percentage bucket.
func orderedListItemToPercentage(list []string, item string) (int, error) {
	index := slices.Index(list, item)
	if index < 0 {
		return 0, fmt.Errorf("%w: speed %q", ErrInvalidValue, item)
	}
	return (index + 1) * 100 / len(list), nil
}

// percentageToOrderedListItem maps a non-zero percentage to the item whose
// bucket contains it.
func percentageToOrderedListItem(list []string, percentage int) string {
	for i, item := range list {
		if percentage <= (i+1)*100/len(list) {
			return item
		}
	}
	return list[len(list)-1]
}

// ErvFan translates an energy recovery ventilator into fan vocabulary.
type ErvFan struct {
	wrapper *device.Wrapper
	dev     *melcloud.ErvDevice
}

func NewErvFan(wrapper *device.Wrapper) *ErvFan {
	return &ErvFan{
		wrapper: wrapper,
		dev:     wrapper.Device().(*melcloud.ErvDevice),
	}
}

func (f *ErvFan) Name() string     { return f.dev.Name() }
func (f *ErvFan) UniqueID() string { return f.wrapper.UniqueID() }
func (f *ErvFan) Available() bool  { return f.wrapper.Available() }
func (f *ErvFan) IsOn() bool       { return f.dev.Power() }

func (f *ErvFan) SpeedCount() int { return len(orderedFanSpeeds) }

func (f *ErvFan) PresetModes() []string { return orderedFanSpeeds }

func (f *ErvFan) PresetMode() string {
	return strconv.Itoa(f.dev.FanSpeed())
}

// Percentage is 0 when the unit is off, otherwise the bucket of the current
// speed.
func (f *ErvFan) Percentage() int {
	if !f.dev.Power() {
		return 0
	}
	pct, err := orderedListItemToPercentage(orderedFanSpeeds, f.PresetMode())
	if err != nil {
		return 0
	}
	return pct
}

func (f *ErvFan) SetPresetMode(ctx context.Context, mode string) error {
	speed, err := strconv.Atoi(mode)
	if err != nil || !slices.Contains(f.dev.FanSpeeds(), speed) {
		return fmt.Errorf("%w: preset mode %q", ErrInvalidValue, mode)
	}
	return f.wrapper.Set(ctx, map[string]any{melcloud.PropertyFanSpeed: speed})
}

// SetPercentage maps the percentage onto the named speed list; 0% turns the
// unit off instead of selecting a speed.
func (f *ErvFan) SetPercentage(ctx context.Context, percentage int) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("%w: percentage %d", ErrInvalidValue, percentage)
	}
	if percentage == 0 {
		return f.TurnOff(ctx)
	}
	return f.SetPresetMode(ctx, percentageToOrderedListItem(orderedFanSpeeds, percentage))
}

func (f *ErvFan) TurnOn(ctx context.Context) error {
	return f.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: true})
}

func (f *ErvFan) TurnOff(ctx context.Context) error {
	return f.wrapper.Set(ctx, map[string]any{melcloud.PropertyPower: false})
}

// Toggle turns the unit off when it runs and on when it does not.
func (f *ErvFan) Toggle(ctx context.Context) error {
	if f.dev.Power() {
		return f.TurnOff(ctx)
	}
	return f.TurnOn(ctx)
}

// ExtraAttributes reports the ventilation detail the fan state does not
// carry.
func (f *ErvFan) ExtraAttributes() map[string]any {
	attrs := f.wrapper.ExtraAttributes()
	if name, ok := ventilationModes.Name(f.dev.VentilationMode()); ok {
		attrs["ventilation"] = name
	}
	if name, ok := ventilationModes.Name(f.dev.ActualVentilationMode()); ok {
		attrs["actual_ventilation"] = name
	}
	if f.dev.FilterMaintenanceRequired() {
		attrs["filter_maintenance"] = true
	}
	if f.dev.CoreMaintenanceRequired() {
		attrs["core_maintenance"] = true
	}
	if speed := f.dev.ActualSupplyFanSpeed(); speed > 0 {
		attrs["supply_fan_speed"] = speed
	}
	if speed := f.dev.ActualExhaustFanSpeed(); speed > 0 {
		attrs["exhaust_fan_speed"] = speed
	}
	return attrs
}
