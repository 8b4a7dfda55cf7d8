package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/pkg/melcloud"
)

func testRegistry(t *testing.T) (*melcloud.TestAPI, *Registry) {
	t.Helper()
	api := melcloud.NewTestAPI()
	confs, err := api.ListDevices(context.Background())
	assert.NoError(t, err)

	var wrappers []*device.Wrapper
	for _, dev := range melcloud.NewDevices(api, confs) {
		w := device.NewWrapper(dev, zap.NewNop())
		assert.NoError(t, w.Update(context.Background()))
		wrappers = append(wrappers, w)
	}
	return api, NewRegistry(wrappers)
}

func refreshWrappers(t *testing.T, r *Registry) {
	t.Helper()
	// the throttle window is driven by wall time in these tests, so reach
	// past the wrapper and refresh the underlying device directly
	for _, w := range r.Wrappers {
		assert.NoError(t, w.Device().Base().Update(context.Background()))
	}
}

func TestRegistryComposition(t *testing.T) {
	_, r := testRegistry(t)

	// one ATA climate plus two ATW zone climates
	assert.Len(t, r.Climates, 3)
	assert.Len(t, r.Fans, 1)
	assert.Len(t, r.Selects, 1)
	assert.Len(t, r.BinarySensors, 1)

	assert.Equal(t, "9452133005-00:1c:2a:40:d0:01", r.Climates[0].UniqueID())
	assert.Equal(t, "1802934005-1", r.Climates[1].UniqueID())
	assert.Equal(t, "1802934005-2", r.Climates[2].UniqueID())
	assert.Equal(t, "6711204005-00:1c:2a:40:d0:03", r.Fans[0].UniqueID())
	assert.Equal(t, "6711204005-00:1c:2a:40:d0:03_ventilation_mode", r.Selects[0].UniqueID())

	_, ok := r.ClimateByID("9452133005-00:1c:2a:40:d0:01")
	assert.True(t, ok)
	_, ok = r.FanByID("6711204005-00:1c:2a:40:d0:03")
	assert.True(t, ok)
}

func TestAtaHVACModeRoundTrip(t *testing.T) {
	_, r := testRegistry(t)
	climate := r.Climates[0]

	for _, mode := range []string{"heat", "dry", "cool", "fan_only", "heat_cool"} {
		assert.NoError(t, climate.SetHVACMode(context.Background(), mode))
		refreshWrappers(t, r)
		assert.Equal(t, mode, climate.HVACMode(), "mode %s", mode)
	}

	// off wins over any remembered operation mode
	assert.NoError(t, climate.SetHVACMode(context.Background(), "off"))
	refreshWrappers(t, r)
	assert.Equal(t, "off", climate.HVACMode())
}

func TestAtaImplicitPowerOn(t *testing.T) {
	api, r := testRegistry(t)
	climate := r.Climates[0]

	assert.NoError(t, climate.SetHVACMode(context.Background(), "off"))
	refreshWrappers(t, r)
	assert.NoError(t, climate.SetHVACMode(context.Background(), "cool"))

	state := api.States[1001]
	assert.True(t, state.Power)
	assert.Equal(t, melcloud.AtaOperationModeCool, state.OperationMode)
}

func TestAtaInvalidModeRejectedBeforeNetwork(t *testing.T) {
	api, r := testRegistry(t)
	climate := r.Climates[0]
	before := api.SetCalls

	err := climate.SetHVACMode(context.Background(), "defrost")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, before, api.SetCalls)
}

func TestSwingModeAxisTracking(t *testing.T) {
	api, r := testRegistry(t)
	ata := r.Climates[0].(*AtaClimate)

	// default axis is vertical
	assert.Equal(t, "VerticalAuto", ata.SwingMode())

	assert.NoError(t, ata.SetSwingMode(context.Background(), "HorizontalSplit"))
	refreshWrappers(t, r)
	assert.Equal(t, "HorizontalSplit", ata.SwingMode())

	assert.NoError(t, ata.SetSwingMode(context.Background(), "VerticalSwing"))
	refreshWrappers(t, r)
	assert.Equal(t, "VerticalSwing", ata.SwingMode())

	// setting the current position again is a no-op
	before := api.SetCalls
	assert.NoError(t, ata.SetSwingMode(context.Background(), "VerticalSwing"))
	assert.Equal(t, before, api.SetCalls)
}

func TestSwingModeValidation(t *testing.T) {
	api, r := testRegistry(t)
	ata := r.Climates[0].(*AtaClimate)
	before := api.SetCalls

	err := ata.SetSwingMode(context.Background(), "Diagonal")
	assert.ErrorIs(t, err, ErrInvalidValue)

	// a known name outside the unit's reported positions is also rejected
	ata.dev.Conf().Device.SwingFunction = false
	err = ata.SetSwingMode(context.Background(), "VerticalSwing")
	assert.ErrorIs(t, err, ErrInvalidValue)

	assert.Equal(t, before, api.SetCalls)
}

func TestSwingModesListsBothAxes(t *testing.T) {
	_, r := testRegistry(t)
	ata := r.Climates[0].(*AtaClimate)

	modes := ata.SwingModes()
	assert.Contains(t, modes, "VerticalAuto")
	assert.Contains(t, modes, "VerticalSwing")
	assert.Contains(t, modes, "HorizontalSplit")
	assert.Contains(t, modes, "HorizontalSwing")
	assert.Len(t, modes, 15)
}

func TestAtaFanModes(t *testing.T) {
	api, r := testRegistry(t)
	ata := r.Climates[0].(*AtaClimate)

	assert.Equal(t, []string{"auto", "1", "2", "3", "4"}, ata.FanModes())
	assert.NoError(t, ata.SetFanMode(context.Background(), "3"))
	assert.Equal(t, 3, api.States[1001].SetFanSpeed)

	err := ata.SetFanMode(context.Background(), "9")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAtaTargetTemperatureBounds(t *testing.T) {
	api, r := testRegistry(t)
	climate := r.Climates[0]

	assert.NoError(t, climate.SetTargetTemperature(context.Background(), 22.5))
	assert.Equal(t, 22.5, api.States[1001].SetTemperature)

	err := climate.SetTargetTemperature(context.Background(), 45)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAtwZoneClimate(t *testing.T) {
	api, r := testRegistry(t)
	zone1 := r.Climates[1].(*AtwZoneClimate)

	assert.Equal(t, "Heat pump Ground floor", zone1.Name())
	assert.Equal(t, "heat", zone1.HVACMode())
	assert.Equal(t, 20.5, zone1.CurrentTemperature())

	assert.NoError(t, zone1.SetTargetTemperature(context.Background(), 21.5))
	assert.Equal(t, 21.5, api.States[1002].SetTemperatureZone1)

	err := zone1.SetTargetTemperature(context.Background(), 35)
	assert.ErrorIs(t, err, ErrInvalidValue)

	// zone 2 runs a curve mode the climate vocabulary cannot express
	zone2 := r.Climates[2].(*AtwZoneClimate)
	assert.Equal(t, "off", zone2.HVACMode())

	assert.NoError(t, zone1.SetHVACMode(context.Background(), "off"))
	refreshWrappers(t, r)
	assert.Equal(t, "off", zone1.HVACMode())
}

func TestFanPercentageRoundTrip(t *testing.T) {
	_, r := testRegistry(t)
	fan := r.Fans[0]

	for _, name := range []string{"1", "2", "3", "4"} {
		pct, err := orderedListItemToPercentage(orderedFanSpeeds, name)
		assert.NoError(t, err)
		assert.Equal(t, name, percentageToOrderedListItem(orderedFanSpeeds, pct))
	}

	assert.NoError(t, fan.SetPercentage(context.Background(), 75))
	refreshWrappers(t, r)
	assert.Equal(t, "3", fan.PresetMode())
	assert.Equal(t, 75, fan.Percentage())

	// 0% turns the unit off rather than selecting a speed
	assert.NoError(t, fan.SetPercentage(context.Background(), 0))
	refreshWrappers(t, r)
	assert.False(t, fan.IsOn())
	assert.Equal(t, 0, fan.Percentage())
}

func TestFanToggle(t *testing.T) {
	_, r := testRegistry(t)
	fan := r.Fans[0]

	assert.True(t, fan.IsOn())
	assert.NoError(t, fan.Toggle(context.Background()))
	refreshWrappers(t, r)
	assert.False(t, fan.IsOn())
	assert.NoError(t, fan.Toggle(context.Background()))
	refreshWrappers(t, r)
	assert.True(t, fan.IsOn())
}

func TestFanValidation(t *testing.T) {
	api, r := testRegistry(t)
	fan := r.Fans[0]
	before := api.SetCalls

	assert.ErrorIs(t, fan.SetPresetMode(context.Background(), "5"), ErrInvalidValue)
	assert.ErrorIs(t, fan.SetPercentage(context.Background(), 140), ErrInvalidValue)
	assert.Equal(t, before, api.SetCalls)
}

func TestVentilationSelect(t *testing.T) {
	api, r := testRegistry(t)
	sel := r.Selects[0]

	assert.Equal(t, "auto", sel.Current())
	assert.NoError(t, sel.Select(context.Background(), "bypass"))
	assert.Equal(t, melcloud.VentilationModeBypass, api.States[1003].VentilationMode)

	before := api.SetCalls
	assert.ErrorIs(t, sel.Select(context.Background(), "turbo"), ErrInvalidValue)
	assert.Equal(t, before, api.SetCalls)
}

func TestSensorsGatedByEnabledPredicate(t *testing.T) {
	_, r := testRegistry(t)

	var keys []string
	for _, s := range r.Sensors {
		keys = append(keys, s.UniqueID())
	}
	assert.Contains(t, keys, "9452133005-00:1c:2a:40:d0:01-energy")
	assert.Contains(t, keys, "1802934005-1-flow_temperature")
	assert.Contains(t, keys, "6711204005-00:1c:2a:40:d0:03-wifi_signal")

	// a unit without an energy meter gets no energy sensor
	api := melcloud.NewTestAPI()
	api.Devices[0].Device.HasEnergyConsumedMeter = false
	confs, err := api.ListDevices(context.Background())
	assert.NoError(t, err)
	devs := melcloud.NewDevices(api, confs)
	w := device.NewWrapper(devs[0], zap.NewNop())
	for _, s := range AtaSensors(w) {
		assert.NotEqual(t, "energy", s.Key)
	}
}

func TestErvSensors(t *testing.T) {
	_, r := testRegistry(t)

	var keys []string
	for _, s := range r.Sensors {
		keys = append(keys, s.UniqueID())
		if s.UniqueID() == "6711204005-00:1c:2a:40:d0:03-outside_temperature" {
			assert.Equal(t, 12.5, s.Value())
		}
	}
	assert.Contains(t, keys, "6711204005-00:1c:2a:40:d0:03-room_temperature")
	assert.Contains(t, keys, "6711204005-00:1c:2a:40:d0:03-outside_temperature")
	// the canned ventilator has no energy meter
	assert.NotContains(t, keys, "6711204005-00:1c:2a:40:d0:03-energy")

	// a metered ventilator gets the energy sensor
	api := melcloud.NewTestAPI()
	api.Devices[2].Device.HasEnergyConsumedMeter = true
	api.Devices[2].Device.TotalEnergyConsumed = 321.7
	confs, err := api.ListDevices(context.Background())
	assert.NoError(t, err)
	devs := melcloud.NewDevices(api, confs)
	w := device.NewWrapper(devs[2], zap.NewNop())
	var found bool
	for _, s := range ErvSensors(w) {
		if s.Key == "energy" {
			found = true
			assert.Equal(t, 321.7, s.Value())
		}
	}
	assert.True(t, found)
}

func TestSensorValues(t *testing.T) {
	_, r := testRegistry(t)

	for _, s := range r.Sensors {
		switch s.UniqueID() {
		case "9452133005-00:1c:2a:40:d0:01-room_temperature":
			assert.Equal(t, 21.5, s.Value())
		case "9452133005-00:1c:2a:40:d0:01-energy":
			assert.Equal(t, 1542.3, s.Value())
		case "1802934005-00:1c:2a:40:d0:02-tank_temperature":
			assert.Equal(t, 48.5, s.Value())
		}
	}
	assert.False(t, r.BinarySensors[0].Value())
}

func TestLookupTableRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewTable(map[int]string{1: "same", 2: "same"})
	})

	table := NewTable(map[int]string{1: "one", 2: "two"})
	code, ok := table.Code("two")
	assert.True(t, ok)
	assert.Equal(t, 2, code)
	_, ok = table.Name(3)
	assert.False(t, ok)
}

func TestClimateExtraAttributes(t *testing.T) {
	_, r := testRegistry(t)
	ata := r.Climates[0].(*AtaClimate)

	attrs := ata.ExtraAttributes()
	assert.Equal(t, "VerticalAuto", attrs["vane_vertical"])
	assert.Equal(t, "HorizontalAuto", attrs["vane_horizontal"])
	assert.Equal(t, "9452133005", attrs["serial_number"])
}
