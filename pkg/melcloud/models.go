package melcloud

import (
	"strings"
	"time"
)

type DeviceType int

const (
	DeviceTypeAta DeviceType = 0
	DeviceTypeAtw DeviceType = 1
	DeviceTypeErv DeviceType = 3
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeAta:
		return "ata"
	case DeviceTypeAtw:
		return "atw"
	case DeviceTypeErv:
		return "erv"
	default:
		return "unknown"
	}
}

type loginResponse struct {
	ErrorId   *int       `json:"ErrorId"`
	ErrorCode *int       `json:"ErrorCode"`
	LoginData *loginData `json:"LoginData"`
}

type loginData struct {
	ContextKey string `json:"ContextKey"`
}

// Building tree returned by User/ListDevices. Devices may appear at the
// structure, area, floor or floor-area level and can be duplicated.
type Building struct {
	Structure Structure `json:"Structure"`
}

type Structure struct {
	Devices []*DeviceConf `json:"Devices"`
	Areas   []Area        `json:"Areas"`
	Floors  []Floor       `json:"Floors"`
}

type Area struct {
	Devices []*DeviceConf `json:"Devices"`
}

type Floor struct {
	Devices []*DeviceConf `json:"Devices"`
	Areas   []Area        `json:"Areas"`
}

// DeviceConf is a single device entry of the building tree. Capability and
// slow-moving unit data lives in the nested Device block and is refreshed on
// its own cadence.
type DeviceConf struct {
	DeviceID     int          `json:"DeviceID"`
	BuildingID   int          `json:"BuildingID"`
	DeviceName   string       `json:"DeviceName"`
	MacAddress   string       `json:"MacAddress"`
	SerialNumber string       `json:"SerialNumber"`
	Type         DeviceType   `json:"Type"`
	Device       DeviceDetail `json:"Device"`
}

type DeviceDetail struct {
	DeviceType         DeviceType `json:"DeviceType"`
	WifiSignalStrength int        `json:"WifiSignalStrength"`
	HasError           bool       `json:"HasError"`
	Units              []Unit     `json:"Units"`

	// ATA capabilities
	NumberOfFanSpeeds           int     `json:"NumberOfFanSpeeds"`
	HasAutomaticFanSpeed        bool    `json:"HasAutomaticFanSpeed"`
	AirDirectionFunction        bool    `json:"AirDirectionFunction"`
	SwingFunction               bool    `json:"SwingFunction"`
	HasWideVane                 bool    `json:"HasWideVane"`
	ModelSupportsAuto           bool    `json:"ModelSupportsAuto"`
	ModelSupportsHeat           bool    `json:"ModelSupportsHeat"`
	ModelSupportsDry            bool    `json:"ModelSupportsDry"`
	ModelSupportsCool           bool    `json:"ModelSupportsCool"`
	ModelSupportsVaneVertical   bool    `json:"ModelSupportsVaneVertical"`
	ModelSupportsVaneHorizontal bool    `json:"ModelSupportsVaneHorizontal"`
	TemperatureIncrement        float64 `json:"TemperatureIncrement"`
	MinTempHeat                 float64 `json:"MinTempHeat"`
	MaxTempHeat                 float64 `json:"MaxTempHeat"`
	MinTempCoolDry              float64 `json:"MinTempCoolDry"`
	MaxTempCoolDry              float64 `json:"MaxTempCoolDry"`
	MinTempAutomatic            float64 `json:"MinTempAutomatic"`
	MaxTempAutomatic            float64 `json:"MaxTempAutomatic"`

	// Energy reporting
	HasEnergyConsumedMeter bool    `json:"HasEnergyConsumedMeter"`
	TotalEnergyConsumed    float64 `json:"TotalEnergyConsumed"`

	// Ambient readings mirrored into the conf block
	RoomTemperature    float64 `json:"RoomTemperature"`
	OutdoorTemperature float64 `json:"OutdoorTemperature"`

	// ATW
	TankWaterTemperature   float64 `json:"TankWaterTemperature"`
	HasZone2               bool    `json:"HasZone2"`
	Zone1Name              string  `json:"Zone1Name"`
	Zone2Name              string  `json:"Zone2Name"`
	FlowTemperature        float64 `json:"FlowTemperature"`
	ReturnTemperature      float64 `json:"ReturnTemperature"`
	FlowTemperatureZone1   float64 `json:"FlowTemperatureZone1"`
	FlowTemperatureZone2   float64 `json:"FlowTemperatureZone2"`
	ReturnTemperatureZone1 float64 `json:"ReturnTemperatureZone1"`
	ReturnTemperatureZone2 float64 `json:"ReturnTemperatureZone2"`

	// ERV
	VentilationMode           int  `json:"VentilationMode"`
	ActualVentilationMode     int  `json:"ActualVentilationMode"`
	ActualSupplyFanSpeed      int  `json:"ActualSupplyFanSpeed"`
	ActualExhaustFanSpeed     int  `json:"ActualExhaustFanSpeed"`
	CoreMaintenanceRequired   bool `json:"CoreMaintenanceRequired"`
	FilterMaintenanceRequired bool `json:"FilterMaintenanceRequired"`
}

// Unit is an indoor/outdoor unit attached to a device.
type Unit struct {
	Model        string `json:"Model"`
	SerialNumber string `json:"SerialNumber"`
	IsIndoor     bool   `json:"IsIndoor"`
}

// DeviceState is the Device/Get response and the Device/Set* request body.
// It is a superset over the three device types; each typed view reads the
// fields relevant to it.
type DeviceState struct {
	DeviceID          int        `json:"DeviceID"`
	BuildingID        int        `json:"BuildingID"`
	DeviceType        DeviceType `json:"DeviceType"`
	Power             bool       `json:"Power"`
	OperationMode     int        `json:"OperationMode"`
	RoomTemperature   float64    `json:"RoomTemperature"`
	SetTemperature    float64    `json:"SetTemperature"`
	SetFanSpeed       int        `json:"SetFanSpeed"`
	NumberOfFanSpeeds int        `json:"NumberOfFanSpeeds"`
	VaneHorizontal    int        `json:"VaneHorizontal"`
	VaneVertical      int        `json:"VaneVertical"`
	ErrorCode         int        `json:"ErrorCode"`
	HasError          bool       `json:"HasError"`
	LastCommunication string     `json:"LastCommunication"`
	EffectiveFlags    int64      `json:"EffectiveFlags"`
	HasPendingCommand bool       `json:"HasPendingCommand"`

	// ATW
	OutdoorTemperature      float64 `json:"OutdoorTemperature"`
	TankWaterTemperature    float64 `json:"TankWaterTemperature"`
	SetTankWaterTemperature float64 `json:"SetTankWaterTemperature"`
	OperationModeZone1      int     `json:"OperationModeZone1"`
	OperationModeZone2      int     `json:"OperationModeZone2"`
	RoomTemperatureZone1    float64 `json:"RoomTemperatureZone1"`
	RoomTemperatureZone2    float64 `json:"RoomTemperatureZone2"`
	SetTemperatureZone1     float64 `json:"SetTemperatureZone1"`
	SetTemperatureZone2     float64 `json:"SetTemperatureZone2"`

	// ERV
	VentilationMode int `json:"VentilationMode"`
}

// LastCommunicationTime parses the LastCommunication timestamp, which the
// API emits with varying fractional precision and no zone designator.
func (s *DeviceState) LastCommunicationTime() (time.Time, error) {
	value := strings.TrimSuffix(s.LastCommunication, "Z")
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
