package domain

import (
	"testing"

	"pod2mqtt/pkg/eightsleep"

	"github.com/stretchr/testify/assert"
)

func TestSensorIdFormatIsStable(t *testing.T) {
	assert := assert.New(t)

	// downstream systems persist entities keyed on this exact format
	assert.Equal("eight_sleep_left_current_temp_f", SensorId(eightsleep.SideLeft, "current_temp_f"))
	assert.Equal("eight_sleep_hub_water_level", SensorId(eightsleep.SideHub, "water_level"))
}

func TestSideSensorsFollowDescriptorTable(t *testing.T) {
	assert := assert.New(t)

	info := eightsleep.DeviceInfo{Host: "10.0.0.5", Port: 8080}
	left := SideSensors(SideDevice(eightsleep.SideLeft, info), eightsleep.SideLeft)
	assert.Len(left, 5)

	byId := map[string]GenericSensor{}
	for _, s := range left {
		byId[s.Id] = s
	}

	temp := byId["eight_sleep_left_current_temp_f"]
	assert.Equal(SENSOR_TYPE_SENSOR, temp.SensorType)
	assert.Equal("temperature", temp.DeviceClass)
	assert.Equal("°F", temp.UnitOfMeasurement)
	assert.Equal(STATE_CLASS_MEASUREMENT, temp.StateClass)
	assert.Equal(temp.Id, temp.UniqueId)

	on := byId["eight_sleep_left_is_on"]
	assert.Equal(SENSOR_TYPE_BINARY, on.SensorType)
	assert.Empty(on.StateClass)

	hub := SideSensors(SideDevice(eightsleep.SideHub, info), eightsleep.SideHub)
	assert.Len(hub, 3)
}

func TestSideDeviceIdentity(t *testing.T) {
	assert := assert.New(t)

	info := eightsleep.DeviceInfo{Host: "10.0.0.5", Port: 8080}
	left := SideDevice(eightsleep.SideLeft, info)
	right := SideDevice(eightsleep.SideRight, info)

	assert.NotEqual(left.Id, right.Id)
	assert.Equal("Eight Sleep – Left", left.Name)
	// same host/port always maps to the same device ids
	assert.Equal(left.Id, SideDevice(eightsleep.SideLeft, info).Id)
}
