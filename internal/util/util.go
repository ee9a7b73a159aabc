package util

import (
	"pod2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Device: config.DeviceConfig{
			Host:               "10.0.0.5",
			Port:               8080,
			PollIntervalMillis: 5000,
			TimeoutMillis:      10000,
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "pod2mqtt",
			HADiscoveryTopic: "homeassistant",
		},
		Port: 8080,
	}
}
