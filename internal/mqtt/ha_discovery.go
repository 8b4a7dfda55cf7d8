package mqtt

import (
	"fmt"

	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/core/events"
)

const (
	CLIMATE_ATTR_MODE         = "mode"
	CLIMATE_ATTR_POWER        = "power"
	CLIMATE_ATTR_TEMPERATURE  = "temperature"
	CLIMATE_ATTR_CURRENT_TEMP = "current_temperature"
	CLIMATE_ATTR_FAN_MODE     = "fan_mode"
	CLIMATE_ATTR_SWING_MODE   = "swing_mode"

	FAN_ATTR_POWER       = "power"
	FAN_ATTR_PERCENTAGE  = "percentage"
	FAN_ATTR_PRESET_MODE = "preset_mode"
)

type HADiscoveryConfig struct {
	Device            HADiscoveryDevice `json:"device"`
	StateTopic        string            `json:"state_topic,omitempty"`
	CommandTopic      string            `json:"command_topic,omitempty"`
	StateClass        string            `json:"state_class,omitempty"`
	DeviceClass       string            `json:"device_class,omitempty"`
	UnitOfMeasurement string            `json:"unit_of_measurement,omitempty"`
	AvTopic           string            `json:"availability_topic,omitempty"`
	EntityCategory    string            `json:"entity_category,omitempty"`
	Name              string            `json:"name"`
	UniqueId          string            `json:"unique_id"`
	Platform          string            `json:"platform"`
	EnabledByDefault  *bool             `json:"enabled_by_default,omitempty"`
	PayloadOn         string            `json:"payload_on,omitempty"`
	PayloadOff        string            `json:"payload_off,omitempty"`
	Icon              string            `json:"icon,omitempty"`

	// climate
	Modes                 []string `json:"modes,omitempty"`
	FanModes              []string `json:"fan_modes,omitempty"`
	SwingModes            []string `json:"swing_modes,omitempty"`
	ModeStateTopic        string   `json:"mode_state_topic,omitempty"`
	ModeCommandTopic      string   `json:"mode_command_topic,omitempty"`
	PowerCommandTopic     string   `json:"power_command_topic,omitempty"`
	TemperatureStateTopic string   `json:"temperature_state_topic,omitempty"`
	TemperatureCmdTopic   string   `json:"temperature_command_topic,omitempty"`
	CurrentTempTopic      string   `json:"current_temperature_topic,omitempty"`
	FanModeStateTopic     string   `json:"fan_mode_state_topic,omitempty"`
	FanModeCommandTopic   string   `json:"fan_mode_command_topic,omitempty"`
	SwingModeStateTopic   string   `json:"swing_mode_state_topic,omitempty"`
	SwingModeCommandTopic string   `json:"swing_mode_command_topic,omitempty"`
	MinTemp               float64  `json:"min_temp,omitempty"`
	MaxTemp               float64  `json:"max_temp,omitempty"`
	TempStep              float64  `json:"temp_step,omitempty"`

	// fan
	PresetModes          []string `json:"preset_modes,omitempty"`
	PercentageStateTopic string   `json:"percentage_state_topic,omitempty"`
	PercentageCmdTopic   string   `json:"percentage_command_topic,omitempty"`
	PresetModeStateTopic string   `json:"preset_mode_state_topic,omitempty"`
	PresetModeCmdTopic   string   `json:"preset_mode_command_topic,omitempty"`
	SpeedRangeMin        int      `json:"speed_range_min,omitempty"`
	SpeedRangeMax        int      `json:"speed_range_max,omitempty"`

	// select
	Options []string `json:"options,omitempty"`
}

type HADiscoveryDevice struct {
	Id           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

func (c *MQTTClient) discoveryTopic(component, deviceId, objectId string) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", c.cfg.HADiscoveryTopic, component, deviceId, objectId)
}

func (c *MQTTClient) HADiscoverySensorTopic(sensor domain.GenericSensor) string {
	return c.discoveryTopic(sensor.SensorType, sensor.Device.Id, sensor.Id)
}

func (c *MQTTClient) HADiscoveryClimateTopic(climate domain.GenericClimate) string {
	return c.discoveryTopic(COMPONENT_CLIMATE, climate.Device.Id, climate.Id)
}

func (c *MQTTClient) HADiscoveryFanTopic(fan domain.GenericFan) string {
	return c.discoveryTopic(COMPONENT_FAN, fan.Device.Id, fan.Id)
}

func (c *MQTTClient) HADiscoverySelectTopic(sel domain.GenericSelect) string {
	return c.discoveryTopic(COMPONENT_SELECT, sel.Device.Id, sel.Id)
}

func GenericSensorToHADiscoveryMessage(client *MQTTClient, sensor domain.GenericSensor) HADiscoveryConfig {
	dev := device(sensor.Device)
	var topic string
	switch {
	case sensor.Id == events.SENSOR_ID_BRIDGE_STATE:
		topic = client.BridgeStateTopic()
	case sensor.SensorType == domain.COMPONENT_SENSOR:
		topic = client.SensorStateTopic(sensor.Id)
	case sensor.SensorType == domain.COMPONENT_BINARY_SENSOR:
		topic = client.BinarySensorStateTopic(sensor.Id)
	}
	disConfig := HADiscoveryConfig{
		Device:            dev,
		StateTopic:        topic,
		StateClass:        sensor.StateClass,
		DeviceClass:       sensor.DeviceClass,
		UnitOfMeasurement: sensor.UnitOfMeasurement,
		AvTopic:           client.BridgeStateTopic(),
		EntityCategory:    sensor.EntityCategory,
		Name:              sensor.Name,
		UniqueId:          sensor.UniqueId,
		Icon:              sensor.Icon,
		EnabledByDefault:  sensor.EnabledByDefault,
		Platform:          "mqtt",
	}
	if sensor.Id == events.SENSOR_ID_BRIDGE_STATE {
		disConfig.PayloadOn = MQTT_PAYLOAD_ONLINE
		disConfig.PayloadOff = MQTT_PAYLOAD_OFFLINE
	} else if sensor.SensorType == domain.COMPONENT_BINARY_SENSOR {
		disConfig.PayloadOn = MQTT_PAYLOAD_ON
		disConfig.PayloadOff = MQTT_PAYLOAD_OFF
	}
	return disConfig
}

func GenericClimateToHADiscoveryMessage(client *MQTTClient, climate domain.GenericClimate) HADiscoveryConfig {
	dev := device(climate.Device)
	disConfig := HADiscoveryConfig{
		Device:                dev,
		AvTopic:               client.AvailabilityTopic(COMPONENT_CLIMATE, climate.Id),
		Name:                  climate.Name,
		UniqueId:              climate.UniqueId,
		Icon:                  climate.Icon,
		Platform:              "mqtt",
		Modes:                 climate.Modes,
		ModeStateTopic:        client.ClimateStateTopic(climate.Id, CLIMATE_ATTR_MODE),
		ModeCommandTopic:      client.ClimateCommandTopic(climate.Id, CLIMATE_ATTR_MODE),
		PowerCommandTopic:     client.ClimateCommandTopic(climate.Id, CLIMATE_ATTR_POWER),
		TemperatureStateTopic: client.ClimateStateTopic(climate.Id, CLIMATE_ATTR_TEMPERATURE),
		TemperatureCmdTopic:   client.ClimateCommandTopic(climate.Id, CLIMATE_ATTR_TEMPERATURE),
		CurrentTempTopic:      client.ClimateStateTopic(climate.Id, CLIMATE_ATTR_CURRENT_TEMP),
		MinTemp:               climate.MinTemp,
		MaxTemp:               climate.MaxTemp,
		TempStep:              climate.TempStep,
	}
	if len(climate.FanModes) > 0 {
		disConfig.FanModes = climate.FanModes
		disConfig.FanModeStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_ATTR_FAN_MODE)
		disConfig.FanModeCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_ATTR_FAN_MODE)
	}
	if len(climate.SwingModes) > 0 {
		disConfig.SwingModes = climate.SwingModes
		disConfig.SwingModeStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_ATTR_SWING_MODE)
		disConfig.SwingModeCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_ATTR_SWING_MODE)
	}
	return disConfig
}

func GenericFanToHADiscoveryMessage(client *MQTTClient, fan domain.GenericFan) HADiscoveryConfig {
	dev := device(fan.Device)
	return HADiscoveryConfig{
		Device:               dev,
		AvTopic:              client.AvailabilityTopic(COMPONENT_FAN, fan.Id),
		Name:                 fan.Name,
		UniqueId:             fan.UniqueId,
		Icon:                 fan.Icon,
		Platform:             "mqtt",
		StateTopic:           client.FanStateTopic(fan.Id, FAN_ATTR_POWER),
		CommandTopic:         client.FanCommandTopic(fan.Id, FAN_ATTR_POWER),
		PayloadOn:            MQTT_PAYLOAD_ON,
		PayloadOff:           MQTT_PAYLOAD_OFF,
		PercentageStateTopic: client.FanStateTopic(fan.Id, FAN_ATTR_PERCENTAGE),
		PercentageCmdTopic:   client.FanCommandTopic(fan.Id, FAN_ATTR_PERCENTAGE),
		PresetModes:          fan.PresetModes,
		PresetModeStateTopic: client.FanStateTopic(fan.Id, FAN_ATTR_PRESET_MODE),
		PresetModeCmdTopic:   client.FanCommandTopic(fan.Id, FAN_ATTR_PRESET_MODE),
		SpeedRangeMin:        1,
		SpeedRangeMax:        fan.SpeedCount,
	}
}

func GenericSelectToHADiscoveryMessage(client *MQTTClient, sel domain.GenericSelect) HADiscoveryConfig {
	dev := device(sel.Device)
	return HADiscoveryConfig{
		Device:       dev,
		AvTopic:      client.AvailabilityTopic(COMPONENT_SELECT, sel.Id),
		Name:         sel.Name,
		UniqueId:     sel.UniqueId,
		Icon:         sel.Icon,
		Platform:     "mqtt",
		StateTopic:   client.SelectStateTopic(sel.Id),
		CommandTopic: client.SelectCommandTopic(sel.Id),
		Options:      sel.Options,
	}
}

func device(d domain.Device) HADiscoveryDevice {
	return HADiscoveryDevice{
		Id:           []string{d.Id},
		Manufacturer: d.Manufacturer,
		Version:      d.Version,
		Model:        d.Model,
		Name:         d.Name,
		ViaDevice:    d.ViaDevice,
	}
}
