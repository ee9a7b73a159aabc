package events

import (
	"testing"

	"pod2mqtt/internal/core/domain"
	"pod2mqtt/pkg/eightsleep"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotToUpdateEvents(t *testing.T) {
	assert := assert.New(t)

	snap := eightsleep.Snapshot{Data: map[string]any{
		"left": map[string]any{
			"currentTemperatureF": float64(83),
			"isOn":                true,
		},
		"waterLevel":  "true",
		"sensorLabel": "abc",
	}}

	evs := SnapshotToUpdateEvents(snap)
	// 5 per bed side plus 3 hub attributes
	assert.Len(evs, 13)

	byId := map[string]any{}
	for _, ev := range evs {
		byId[ev.(domain.SensorUpdateEvent).SensorId()] = ev
	}

	temp, ok := byId["eight_sleep_left_current_temp_f"].(domain.FloatSensorUpdateEvent)
	assert.True(ok)
	assert.Equal(float64(83), temp.Value)

	on, ok := byId["eight_sleep_left_is_on"].(domain.BinarySensorUpdateEvent)
	assert.True(ok)
	assert.True(on.Value)

	water, ok := byId["eight_sleep_hub_water_level"].(domain.BinarySensorUpdateEvent)
	assert.True(ok)
	assert.True(water.Value)

	label, ok := byId["eight_sleep_hub_sensor_label"].(domain.TextSensorUpdateEvent)
	assert.True(ok)
	assert.Equal("abc", label.Value)

	// right side is missing entirely: events default instead of dropping
	rightTemp, ok := byId["eight_sleep_right_current_temp_f"].(domain.FloatSensorUpdateEvent)
	assert.True(ok)
	assert.Equal(float64(0), rightTemp.Value)
}

func TestBridgeOnlineUpdateEvent(t *testing.T) {
	ev, ok := BridgeOnlineUpdateEvent(true).(domain.BridgeStateUpdateEvent)
	assert.True(t, ok)
	assert.True(t, ev.Value)
	assert.Equal(t, domain.SENSOR_ID_BRIDGE_STATE, ev.SensorId())
}
