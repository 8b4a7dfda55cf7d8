package entity

import (
	"context"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

// Climate is the shared surface of the two climate adapters.
type Climate interface {
	Name() string
	UniqueID() string
	Available() bool
	HVACMode() string
	HVACModes() []string
	SetHVACMode(ctx context.Context, mode string) error
	CurrentTemperature() float64
	TargetTemperature() float64
	SetTargetTemperature(ctx context.Context, value float64) error
	MinTemp() float64
	MaxTemp() float64
	ExtraAttributes() map[string]any
}

// Registry holds every entity built from the discovered devices, indexed for
// command dispatch.
type Registry struct {
	Wrappers      []*device.Wrapper
	Climates      []Climate
	Fans          []*ErvFan
	Selects       []*ErvVentilationSelect
	Sensors       []*Sensor
	BinarySensors []*BinarySensor

	climatesByID map[string]Climate
	fansByID     map[string]*ErvFan
	selectsByID  map[string]*ErvVentilationSelect
}

// NewRegistry builds the entity set of the given device wrappers: one
// climate per air-to-air device, one per air-to-water zone, a fan and a
// ventilation select per ventilator, plus the per-type sensors.
func NewRegistry(wrappers []*device.Wrapper) *Registry {
	r := &Registry{
		Wrappers:     wrappers,
		climatesByID: map[string]Climate{},
		fansByID:     map[string]*ErvFan{},
		selectsByID:  map[string]*ErvVentilationSelect{},
	}
	for _, w := range wrappers {
		switch dev := w.Device().(type) {
		case *melcloud.AtaDevice:
			r.addClimate(NewAtaClimate(w))
			r.Sensors = append(r.Sensors, AtaSensors(w)...)
			r.BinarySensors = append(r.BinarySensors, ErrorStateBinarySensor(w))
		case *melcloud.AtwDevice:
			for _, zone := range dev.Zones() {
				r.addClimate(NewAtwZoneClimate(w, zone))
				r.Sensors = append(r.Sensors, AtwZoneSensors(w, zone)...)
			}
			r.Sensors = append(r.Sensors, AtwSensors(w)...)
		case *melcloud.ErvDevice:
			fan := NewErvFan(w)
			sel := NewErvVentilationSelect(w)
			r.Fans = append(r.Fans, fan)
			r.Selects = append(r.Selects, sel)
			r.fansByID[fan.UniqueID()] = fan
			r.selectsByID[sel.UniqueID()] = sel
			r.Sensors = append(r.Sensors, ErvSensors(w)...)
		}
	}
	return r
}

func (r *Registry) addClimate(c Climate) {
	r.Climates = append(r.Climates, c)
	r.climatesByID[c.UniqueID()] = c
}

func (r *Registry) ClimateByID(id string) (Climate, bool) {
	c, ok := r.climatesByID[id]
	return c, ok
}

func (r *Registry) FanByID(id string) (*ErvFan, bool) {
	f, ok := r.fansByID[id]
	return f, ok
}

func (r *Registry) SelectByID(id string) (*ErvVentilationSelect, bool) {
	s, ok := r.selectsByID[id]
	return s, ok
}
