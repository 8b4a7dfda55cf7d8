package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"

	"melcloud2mqtt/pkg/melcloud"
)

type Config struct {
	LogLevel zapcore.Level
	MELCloud MELCloudConfig `mapstructure:"melcloud"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`

	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

type MELCloudConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// locale tag, e.g. "en"
	Language           string `mapstructure:"language"`
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

// LanguageCode validates the configured locale tag and resolves its login
// code.
func (c MELCloudConfig) LanguageCode() (int, error) {
	return melcloud.LanguageCode(c.Language)
}
