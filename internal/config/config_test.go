package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDevice(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(ValidateDevice(DeviceConfig{Host: "10.0.0.5", Port: 8080}))
	assert.Error(ValidateDevice(DeviceConfig{Host: "", Port: 8080}))
	assert.Error(ValidateDevice(DeviceConfig{Host: "   ", Port: 8080}))
	assert.Error(ValidateDevice(DeviceConfig{Host: "10.0.0.5", Port: 0}))
	assert.Error(ValidateDevice(DeviceConfig{Host: "10.0.0.5", Port: 70000}))
}

func TestCheckMQTTTopic(t *testing.T) {
	assert := assert.New(t)

	topic, err := CheckMQTTTopic("Pod2MQTT")
	assert.NoError(err)
	assert.Equal("pod2mqtt", topic)

	_, err = CheckMQTTTopic("bad/topic")
	assert.Error(err)

	_, err = CheckMQTTTopic("")
	assert.Error(err)
}
