package melcloud

import (
	"context"
	"sync"
)

// TestAPI is an in-memory API used by the actor and entity tests. Canned
// devices can be tweaked per test, and errors can be injected per call.
type TestAPI struct {
	mu sync.Mutex

	Devices []*DeviceConf
	States  map[int]*DeviceState

	LoginOK  bool
	LoginErr error
	ListErr  error
	GetErr   error
	SetErr   error

	LoginCalls int
	ListCalls  int
	GetCalls   int
	SetCalls   int
}

func NewTestAPI() *TestAPI {
	ataConf := testAtaConf()
	atwConf := testAtwConf()
	ervConf := testErvConf()
	return &TestAPI{
		Devices: []*DeviceConf{ataConf, atwConf, ervConf},
		States: map[int]*DeviceState{
			ataConf.DeviceID: testAtaState(ataConf),
			atwConf.DeviceID: testAtwState(atwConf),
			ervConf.DeviceID: testErvState(ervConf),
		},
		LoginOK: true,
	}
}

func (a *TestAPI) Login(_ context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.LoginCalls++
	if a.LoginErr != nil {
		return false, a.LoginErr
	}
	return a.LoginOK, nil
}

func (a *TestAPI) ListDevices(_ context.Context) ([]*DeviceConf, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ListCalls++
	if a.ListErr != nil {
		return nil, a.ListErr
	}
	return a.Devices, nil
}

func (a *TestAPI) GetDeviceState(_ context.Context, deviceID, _ int) (*DeviceState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.GetCalls++
	if a.GetErr != nil {
		return nil, a.GetErr
	}
	state := *a.States[deviceID]
	return &state, nil
}

func (a *TestAPI) SetDeviceState(_ context.Context, state *DeviceState) (*DeviceState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.SetCalls++
	if a.SetErr != nil {
		return nil, a.SetErr
	}
	updated := *state
	updated.HasPendingCommand = true
	a.States[state.DeviceID] = &updated
	out := updated
	return &out, nil
}

func testAtaConf() *DeviceConf {
	return &DeviceConf{
		DeviceID:     1001,
		BuildingID:   10,
		DeviceName:   "Living room",
		MacAddress:   "00:1c:2a:40:d0:01",
		SerialNumber: "9452133005",
		Type:         DeviceTypeAta,
		Device: DeviceDetail{
			DeviceType:                  DeviceTypeAta,
			WifiSignalStrength:          -52,
			NumberOfFanSpeeds:           4,
			HasAutomaticFanSpeed:        true,
			SwingFunction:               true,
			HasWideVane:                 true,
			ModelSupportsAuto:           true,
			ModelSupportsHeat:           true,
			ModelSupportsDry:            true,
			ModelSupportsCool:           true,
			ModelSupportsVaneVertical:   true,
			ModelSupportsVaneHorizontal: true,
			TemperatureIncrement:        0.5,
			MinTempHeat:                 10,
			MaxTempHeat:                 31,
			MinTempCoolDry:              16,
			MaxTempCoolDry:              31,
			MinTempAutomatic:            16,
			MaxTempAutomatic:            31,
			HasEnergyConsumedMeter:      true,
			TotalEnergyConsumed:         1542.3,
			RoomTemperature:             21.5,
			Units: []Unit{
				{Model: "MSZ-AP25VGK", SerialNumber: "3001", IsIndoor: true},
				{Model: "MUZ-AP25VG", SerialNumber: "3002", IsIndoor: false},
			},
		},
	}
}

func testAtaState(conf *DeviceConf) *DeviceState {
	return &DeviceState{
		DeviceID:          conf.DeviceID,
		BuildingID:        conf.BuildingID,
		DeviceType:        DeviceTypeAta,
		Power:             true,
		OperationMode:     AtaOperationModeHeat,
		RoomTemperature:   21.5,
		SetTemperature:    22,
		SetFanSpeed:       2,
		NumberOfFanSpeeds: 4,
		VaneVertical:      VanePositionAuto,
		VaneHorizontal:    VanePositionAuto,
		LastCommunication: "2024-02-10T08:31:22.213",
	}
}

func testAtwConf() *DeviceConf {
	return &DeviceConf{
		DeviceID:     1002,
		BuildingID:   10,
		DeviceName:   "Heat pump",
		MacAddress:   "00:1c:2a:40:d0:02",
		SerialNumber: "1802934005",
		Type:         DeviceTypeAtw,
		Device: DeviceDetail{
			DeviceType:             DeviceTypeAtw,
			WifiSignalStrength:     -61,
			HasZone2:               true,
			Zone1Name:              "Ground floor",
			TankWaterTemperature:   48.5,
			FlowTemperature:        35,
			ReturnTemperature:      30.5,
			FlowTemperatureZone1:   35,
			ReturnTemperatureZone1: 30.5,
			Units: []Unit{
				{Model: "EHSD-VM2D", SerialNumber: "4001", IsIndoor: true},
				{Model: "PUD-SWM60", SerialNumber: "4002", IsIndoor: false},
			},
		},
	}
}

func testAtwState(conf *DeviceConf) *DeviceState {
	return &DeviceState{
		DeviceID:                conf.DeviceID,
		BuildingID:              conf.BuildingID,
		DeviceType:              DeviceTypeAtw,
		Power:                   true,
		OutdoorTemperature:      4.5,
		TankWaterTemperature:    48.5,
		SetTankWaterTemperature: 50,
		OperationModeZone1:      AtwZoneOperationModeHeatThermostat,
		OperationModeZone2:      AtwZoneOperationModeCurve,
		RoomTemperatureZone1:    20.5,
		RoomTemperatureZone2:    19,
		SetTemperatureZone1:     21,
		SetTemperatureZone2:     20,
		LastCommunication:       "2024-02-10T08:31:40.101",
	}
}

func testErvConf() *DeviceConf {
	return &DeviceConf{
		DeviceID:     1003,
		BuildingID:   10,
		DeviceName:   "Lossnay",
		MacAddress:   "00:1c:2a:40:d0:03",
		SerialNumber: "6711204005",
		Type:         DeviceTypeErv,
		Device: DeviceDetail{
			DeviceType:            DeviceTypeErv,
			WifiSignalStrength:    -58,
			NumberOfFanSpeeds:     4,
			VentilationMode:       VentilationModeAuto,
			ActualVentilationMode: VentilationModeRecovery,
			ActualSupplyFanSpeed:  2,
			ActualExhaustFanSpeed: 2,
			RoomTemperature:       20,
			OutdoorTemperature:    12.5,
			Units: []Unit{
				{Model: "VL-100EU5", SerialNumber: "5001", IsIndoor: true},
			},
		},
	}
}

func testErvState(conf *DeviceConf) *DeviceState {
	return &DeviceState{
		DeviceID:          conf.DeviceID,
		BuildingID:        conf.BuildingID,
		DeviceType:        DeviceTypeErv,
		Power:             true,
		SetFanSpeed:       2,
		NumberOfFanSpeeds: 4,
		VentilationMode:   VentilationModeAuto,
		LastCommunication: "2024-02-10T08:32:01.550",
	}
}
