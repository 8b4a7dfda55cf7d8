package util

import (
	"melcloud2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		MELCloud: config.MELCloudConfig{
			Username:           "user@example.com",
			Password:           "secret",
			Language:           "en",
			PollIntervalMillis: 0,
		},
		MQTT: config.MQTTConfig{
			Host:              "localhost",
			Port:              1883,
			BaseTopic:         "melcloud2mqtt",
			HADiscoveryEnable: false,
			HADiscoveryTopic:  "homeassistant",
		},
		Port: 8080,
	}
}
