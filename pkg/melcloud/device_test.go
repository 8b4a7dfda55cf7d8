package melcloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDevices(t *testing.T) (*TestAPI, *AtaDevice, *AtwDevice, *ErvDevice) {
	t.Helper()
	api := NewTestAPI()
	confs, err := api.ListDevices(context.Background())
	assert.NoError(t, err)
	devices := NewDevices(api, confs)
	assert.Len(t, devices, 3)
	return api, devices[0].(*AtaDevice), devices[1].(*AtwDevice), devices[2].(*ErvDevice)
}

func TestSetBuildsEffectiveFlags(t *testing.T) {
	api, ata, _, _ := testDevices(t)
	assert.NoError(t, ata.Update(context.Background()))

	err := ata.Set(context.Background(), map[string]any{
		PropertyPower:             true,
		PropertyOperationMode:     AtaOperationModeCool,
		PropertyTargetTemperature: 24.0,
	})
	assert.NoError(t, err)

	state := api.States[ata.DeviceID()]
	assert.Equal(t, flagPower|flagOperationMode|flagTargetTemp, state.EffectiveFlags)
	assert.True(t, state.HasPendingCommand)
	assert.Equal(t, AtaOperationModeCool, state.OperationMode)
	assert.Equal(t, 24.0, state.SetTemperature)
	// untouched fields keep their previous values
	assert.Equal(t, 2, state.SetFanSpeed)
}

func TestSetWithoutStateFails(t *testing.T) {
	_, ata, _, _ := testDevices(t)

	err := ata.Set(context.Background(), map[string]any{PropertyPower: false})
	assert.Error(t, err)
}

func TestSetRejectsUnknownAndMistypedProperties(t *testing.T) {
	api, ata, _, _ := testDevices(t)
	assert.NoError(t, ata.Update(context.Background()))
	before := api.SetCalls

	err := ata.Set(context.Background(), map[string]any{"frobnicate": 1})
	assert.Error(t, err)
	err = ata.Set(context.Background(), map[string]any{PropertyPower: "on"})
	assert.Error(t, err)
	err = ata.Set(context.Background(), map[string]any{PropertyVentilationMode: VentilationModeBypass})
	assert.Error(t, err)
	assert.Equal(t, before, api.SetCalls)
}

func TestAtaCapabilities(t *testing.T) {
	_, ata, _, _ := testDevices(t)
	assert.NoError(t, ata.Update(context.Background()))

	assert.Equal(t, []int{1, 2, 3, 7, 8}, ata.OperationModes())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ata.FanSpeeds())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 7}, ata.VaneVerticalPositions())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 8, 12}, ata.VaneHorizontalPositions())
	assert.Equal(t, 0.5, ata.TargetTemperatureStep())
	assert.Equal(t, 10.0, ata.TargetTemperatureMin())
	assert.Equal(t, 31.0, ata.TargetTemperatureMax())
	assert.Equal(t, "MSZ-AP25VGK, MUZ-AP25VG", ata.UnitModels())
}

func TestAtwZones(t *testing.T) {
	api, _, atw, _ := testDevices(t)
	assert.NoError(t, atw.Update(context.Background()))

	zones := atw.Zones()
	assert.Len(t, zones, 2)
	assert.Equal(t, "Ground floor", zones[0].Name())
	assert.Equal(t, "Zone 2", zones[1].Name())
	assert.Equal(t, 21.0, zones[0].TargetTemperature())
	assert.Equal(t, AtwZoneOperationModeCurve, zones[1].OperationMode())

	err := atw.Set(context.Background(), map[string]any{
		zones[1].TargetTemperatureProperty(): 20.5,
	})
	assert.NoError(t, err)
	state := api.States[atw.DeviceID()]
	assert.Equal(t, flagZone2TargetTemp, state.EffectiveFlags)
	assert.Equal(t, 20.5, state.SetTemperatureZone2)
}

func TestErvAccessors(t *testing.T) {
	api, _, _, erv := testDevices(t)
	assert.NoError(t, erv.Update(context.Background()))

	assert.Equal(t, []int{1, 2, 3, 4}, erv.FanSpeeds())
	assert.Equal(t, VentilationModeAuto, erv.VentilationMode())
	assert.Equal(t, VentilationModeRecovery, erv.ActualVentilationMode())

	err := erv.Set(context.Background(), map[string]any{
		PropertyVentilationMode: VentilationModeBypass,
		PropertyFanSpeed:        3,
	})
	assert.NoError(t, err)
	state := api.States[erv.DeviceID()]
	assert.Equal(t, flagVentilationMode|flagFanSpeed, state.EffectiveFlags)
	assert.Equal(t, VentilationModeBypass, state.VentilationMode)
}
