package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Device   DeviceConfig `mapstructure:"device"`
	MQTT     MQTTConfig   `mapstructure:"mqtt"`

	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

type DeviceConfig struct {
	Host               string
	Port               uint
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
	TimeoutMillis      uint32 `mapstructure:"timeout_millis"`
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

// ValidateDevice checks the device connection params before any client is
// constructed.
func ValidateDevice(cfg DeviceConfig) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return errors.New("config param device.host is required")
	}
	if cfg.Port == 0 || cfg.Port >= 65536 {
		return errors.New("config param device.port must be in range 1..65535")
	}
	return nil
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
