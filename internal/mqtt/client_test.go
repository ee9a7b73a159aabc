package mqtt

import (
	"testing"

	"pod2mqtt/internal/core/domain"
	"pod2mqtt/internal/util"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := util.LoadTestConfig()
	return CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
}

func TestStateTopics(t *testing.T) {
	assert := assert.New(t)

	c := testClient()
	assert.Equal("pod2mqtt/bridge/state", c.BridgeStateTopic())
	assert.Equal("pod2mqtt/sensor/eight_sleep_left_current_temp_f/state", c.SensorStateTopic("eight_sleep_left_current_temp_f"))
	assert.Equal("pod2mqtt/binary_sensor/eight_sleep_hub_water_level/state", c.BinarySensorStateTopic("eight_sleep_hub_water_level"))
}

func TestHADiscoveryMessage(t *testing.T) {
	assert := assert.New(t)

	c := testClient()
	sensor := domain.GenericSensor{
		Device:            domain.Device{Id: "eight_sleep_left_device_abc12345", Name: "Eight Sleep – Left"},
		Id:                "eight_sleep_left_current_temp_f",
		SensorType:        domain.SENSOR_TYPE_SENSOR,
		Name:              "Current Temperature (F)",
		StateClass:        domain.STATE_CLASS_MEASUREMENT,
		DeviceClass:       "temperature",
		UnitOfMeasurement: "°F",
		UniqueId:          "eight_sleep_left_current_temp_f",
	}

	msg := GenericSensorToHADiscoveryMessage(c, sensor)
	assert.Equal("pod2mqtt/sensor/eight_sleep_left_current_temp_f/state", msg.StateTopic)
	assert.Equal("pod2mqtt/bridge/state", msg.AvTopic)
	assert.Equal("mqtt", msg.Platform)
	assert.Empty(msg.PayloadOn)

	topic := HADiscoverySensorTopic("homeassistant", sensor)
	assert.Equal("homeassistant/sensor/eight_sleep_left_device_abc12345/eight_sleep_left_current_temp_f/config", topic)
}

func TestHADiscoveryBinaryPayloads(t *testing.T) {
	assert := assert.New(t)

	c := testClient()
	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "dev"},
		Id:         "eight_sleep_hub_water_level",
		SensorType: domain.SENSOR_TYPE_BINARY,
		Name:       "Water Level",
		UniqueId:   "eight_sleep_hub_water_level",
	}

	msg := GenericSensorToHADiscoveryMessage(c, sensor)
	assert.Equal(MQTT_PAYLOAD_ON, msg.PayloadOn)
	assert.Equal(MQTT_PAYLOAD_OFF, msg.PayloadOff)
	assert.Equal("pod2mqtt/binary_sensor/eight_sleep_hub_water_level/state", msg.StateTopic)
}

func TestBridgeStateDiscovery(t *testing.T) {
	c := testClient()
	bridge := domain.BridgeSensors(domain.BridgeDevice("pod2mqtt"))[0]
	msg := GenericSensorToHADiscoveryMessage(c, bridge)
	assert.Equal(t, "pod2mqtt/bridge/state", msg.StateTopic)
	assert.Equal(t, MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Equal(t, MQTT_PAYLOAD_OFFLINE, msg.PayloadOff)
}
