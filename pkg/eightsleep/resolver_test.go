package eightsleep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapOf(data map[string]any) Snapshot {
	return Snapshot{Data: data}
}

func TestResolveSideNumber(t *testing.T) {
	snap := snapOf(map[string]any{
		"left": map[string]any{"currentTemperatureF": float64(83)},
	})
	assert.Equal(t, float64(83), Resolve(SideLeft, "current_temp_f", snap))
}

func TestResolveHubStringBool(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(true, Resolve(SideHub, "water_level", snapOf(map[string]any{"waterLevel": "true"})))
	assert.Equal(false, Resolve(SideHub, "water_level", snapOf(map[string]any{"waterLevel": "false"})))
	// anything that is not the literal text "true" is false
	assert.Equal(false, Resolve(SideHub, "water_level", snapOf(map[string]any{"waterLevel": "yes"})))
	assert.Equal(false, Resolve(SideHub, "water_level", snapOf(map[string]any{})))
}

func TestResolveMissingSideYieldsDefault(t *testing.T) {
	assert := assert.New(t)

	empty := snapOf(map[string]any{})
	assert.Equal(false, Resolve(SideRight, "is_on", empty))
	assert.Equal(float64(0), Resolve(SideRight, "current_temp_f", empty))
	assert.Equal("", Resolve(SideHub, "sensor_label", empty))
}

func TestResolveMissingKeyYieldsDefault(t *testing.T) {
	snap := snapOf(map[string]any{
		"left": map[string]any{"isOn": true},
	})
	assert.Equal(t, float64(0), Resolve(SideLeft, "current_temp_f", snap))
	assert.Equal(t, true, Resolve(SideLeft, "is_on", snap))
}

func TestResolveMalformedValueYieldsDefault(t *testing.T) {
	snap := snapOf(map[string]any{
		"left": map[string]any{"currentTemperatureF": "not a number", "isOn": "nope"},
	})
	assert.Equal(t, float64(0), Resolve(SideLeft, "current_temp_f", snap))
	assert.Equal(t, false, Resolve(SideLeft, "is_on", snap))
}

func TestResolveUnknownAttributeForSide(t *testing.T) {
	// is_priming only exists on the hub, the resolver still answers with
	// the bool default instead of failing
	snap := snapOf(map[string]any{"isPriming": true})
	assert.Equal(t, false, Resolve(SideLeft, "is_priming", snap))
	assert.Nil(t, Resolve(SideLeft, "no_such_attribute", snap))
}

func TestTypedResolvers(t *testing.T) {
	assert := assert.New(t)

	snap := snapOf(map[string]any{
		"right":       map[string]any{"targetTemperatureF": float64(90), "isAlarmVibrating": true},
		"sensorLabel": "abc",
	})
	assert.Equal(float64(90), ResolveNumber(SideRight, "target_temp_f", snap))
	assert.True(ResolveBool(SideRight, "is_alarm_vibrating", snap))
	assert.Equal("abc", ResolveString(SideHub, "sensor_label", snap))
}

func TestAttributeTables(t *testing.T) {
	assert := assert.New(t)

	assert.Len(Attributes(SideLeft), 5)
	assert.Len(Attributes(SideRight), 5)
	assert.Len(Attributes(SideHub), 3)

	attr, ok := LookupAttribute(SideHub, "water_level")
	assert.True(ok)
	assert.True(attr.StringBool)
	assert.Equal("waterLevel", attr.JSONKey)

	_, ok = LookupAttribute(SideLeft, "water_level")
	assert.False(ok)
}
