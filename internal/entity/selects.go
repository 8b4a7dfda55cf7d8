package entity

import (
	"context"
	"fmt"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

var ventilationModes = NewTable(map[int]string{
	melcloud.VentilationModeRecovery: "recovery",
	melcloud.VentilationModeBypass:   "bypass",
	melcloud.VentilationModeAuto:     "auto",
})

// ErvVentilationSelect is the ventilation mode chooser of a ventilator.
type ErvVentilationSelect struct {
	wrapper *device.Wrapper
	dev     *melcloud.ErvDevice
}

func NewErvVentilationSelect(wrapper *device.Wrapper) *ErvVentilationSelect {
	return &ErvVentilationSelect{
		wrapper: wrapper,
		dev:     wrapper.Device().(*melcloud.ErvDevice),
	}
}

func (s *ErvVentilationSelect) Name() string {
	return fmt.Sprintf("%s Ventilation Mode", s.dev.Name())
}

func (s *ErvVentilationSelect) UniqueID() string {
	return fmt.Sprintf("%s_ventilation_mode", s.wrapper.UniqueID())
}

func (s *ErvVentilationSelect) Available() bool { return s.wrapper.Available() }

func (s *ErvVentilationSelect) Options() []string {
	return []string{"recovery", "bypass", "auto"}
}

func (s *ErvVentilationSelect) Current() string {
	name, ok := ventilationModes.Name(s.dev.VentilationMode())
	if !ok {
		return ""
	}
	return name
}

func (s *ErvVentilationSelect) Select(ctx context.Context, option string) error {
	code, ok := ventilationModes.Code(option)
	if !ok {
		return fmt.Errorf("%w: ventilation mode %q", ErrInvalidValue, option)
	}
	return s.wrapper.Set(ctx, map[string]any{melcloud.PropertyVentilationMode: code})
}
