package mqtt

import (
	"testing"

	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/util"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := util.LoadTestConfig()
	return CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
}

func TestClimateDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	climate := domain.GenericClimate{
		Device:     domain.Device{Id: "mel_0a1b2c3d"},
		Id:         "9452133005-00:1c:2a:40:d0:01",
		Name:       "Living room",
		UniqueId:   "uid_climate_0a1b2c3d",
		Modes:      []string{"off", "heat", "dry", "cool", "fan_only", "heat_cool"},
		FanModes:   []string{"auto", "1", "2", "3"},
		SwingModes: []string{"auto", "1", "2", "3", "4", "5"},
		MinTemp:    7,
		MaxTemp:    35,
		TempStep:   0.5,
	}

	msg := GenericClimateToHADiscoveryMessage(client, climate)

	assert.Equal(climate.Modes, msg.Modes)
	assert.Equal(climate.FanModes, msg.FanModes)
	assert.Equal(climate.SwingModes, msg.SwingModes)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/mode/state", msg.ModeStateTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/mode/set", msg.ModeCommandTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/temperature/state", msg.TemperatureStateTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/temperature/set", msg.TemperatureCmdTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/current_temperature/state", msg.CurrentTempTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/fan_mode/set", msg.FanModeCommandTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/swing_mode/set", msg.SwingModeCommandTopic)
	assert.Equal("melcloud2mqtt/climate/9452133005-00:1c:2a:40:d0:01/availability", msg.AvTopic)
	assert.Equal(0.5, msg.TempStep)
	assert.Equal("homeassistant/climate/mel_0a1b2c3d/9452133005-00:1c:2a:40:d0:01/config", client.HADiscoveryClimateTopic(climate))
}

func TestZoneClimateDiscoveryOmitsFanAndSwing(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	climate := domain.GenericClimate{
		Device:   domain.Device{Id: "mel_11223344"},
		Id:       "1802934005-1",
		Name:     "Zone 1",
		UniqueId: "uid_climate_11223344",
		Modes:    []string{"heat"},
		MinTemp:  10,
		MaxTemp:  30,
		TempStep: 0.5,
	}

	msg := GenericClimateToHADiscoveryMessage(client, climate)

	assert.Empty(msg.FanModes)
	assert.Empty(msg.FanModeStateTopic)
	assert.Empty(msg.FanModeCommandTopic)
	assert.Empty(msg.SwingModes)
	assert.Empty(msg.SwingModeStateTopic)
	assert.Empty(msg.SwingModeCommandTopic)
}

func TestFanDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	fan := domain.GenericFan{
		Device:      domain.Device{Id: "mel_55667788"},
		Id:          "6711204005-00:1c:2a:40:d0:03",
		Name:        "Lossnay",
		UniqueId:    "uid_fan_55667788",
		PresetModes: []string{"1", "2", "3", "4"},
		SpeedCount:  4,
	}

	msg := GenericFanToHADiscoveryMessage(client, fan)

	assert.Equal("melcloud2mqtt/fan/6711204005-00:1c:2a:40:d0:03/power/state", msg.StateTopic)
	assert.Equal("melcloud2mqtt/fan/6711204005-00:1c:2a:40:d0:03/percentage/set", msg.PercentageCmdTopic)
	assert.Equal(1, msg.SpeedRangeMin)
	assert.Equal(4, msg.SpeedRangeMax)
	assert.Equal(MQTT_PAYLOAD_ON, msg.PayloadOn)
	assert.Equal(MQTT_PAYLOAD_OFF, msg.PayloadOff)
}

func TestSelectDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	sel := domain.GenericSelect{
		Device:   domain.Device{Id: "mel_55667788"},
		Id:       "6711204005-00:1c:2a:40:d0:03_ventilation_mode",
		Name:     "Ventilation mode",
		UniqueId: "uid_select_55667788",
		Options:  []string{"energy_recovery", "bypass", "auto"},
	}

	msg := GenericSelectToHADiscoveryMessage(client, sel)

	assert.Equal("melcloud2mqtt/select/6711204005-00:1c:2a:40:d0:03_ventilation_mode/option/state", msg.StateTopic)
	assert.Equal("melcloud2mqtt/select/6711204005-00:1c:2a:40:d0:03_ventilation_mode/option/set", msg.CommandTopic)
	assert.Equal(sel.Options, msg.Options)
}
