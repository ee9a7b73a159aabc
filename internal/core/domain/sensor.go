package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"pod2mqtt/pkg/eightsleep"

	"github.com/carlmjohnson/versioninfo"
)

const (
	// SensorNamespace prefixes every sensor identifier. Downstream systems
	// key on `<namespace>_<side>_<attribute_id>`, so this must stay stable
	// across releases.
	SensorNamespace = "eight_sleep"

	SENSOR_ID_BRIDGE_STATE = "bridge"

	STATE_CLASS_MEASUREMENT   = "measurement"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC   = "diagnostic"
	SENSOR_TYPE_SENSOR        = "sensor"
	SENSOR_TYPE_BINARY        = "binary_sensor"
)

// SensorId builds the stable identifier for a (side, attribute) pair.
func SensorId(side eightsleep.Side, attributeID string) string {
	return fmt.Sprintf("%s_%s_%s", SensorNamespace, side, attributeID)
}

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("pod2mqtt_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "pod2mqtt",
		Model:        "pod2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("pod2mqtt %s", md5HashShort(baseTopic)),
	}
}

// SideDevice models one addressable part of the pod (left, right or hub) as
// a distinct device, identified by where it is polled from.
func SideDevice(side eightsleep.Side, info eightsleep.DeviceInfo) Device {
	return Device{
		Id:           fmt.Sprintf("%s_%s_device_%s", SensorNamespace, side, md5HashShort(fmt.Sprintf("%s_%d", info.Host, info.Port))),
		Name:         fmt.Sprintf("Eight Sleep – %s", capitalize(string(side))),
		Manufacturer: "Eight Sleep (Local)",
		Model:        "Pod vLocal",
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// SideSensors derives the sensor catalog of one side from the resolver's
// descriptor table, so discovery and state publishing can never drift apart.
func SideSensors(device Device, side eightsleep.Side) []GenericSensor {
	var sensors []GenericSensor

	for _, attr := range eightsleep.Attributes(side) {
		id := SensorId(side, attr.ID)
		sensorType := SENSOR_TYPE_SENSOR
		stateClass := ""
		if attr.Kind == eightsleep.KindBool {
			sensorType = SENSOR_TYPE_BINARY
		} else if attr.Kind == eightsleep.KindNumber {
			stateClass = STATE_CLASS_MEASUREMENT
		}
		sensors = append(sensors, GenericSensor{
			Device:            device,
			Id:                id,
			SensorType:        sensorType,
			Name:              attr.Name,
			StateClass:        stateClass,
			DeviceClass:       attr.DeviceClass,
			UnitOfMeasurement: attr.Unit,
			UniqueId:          id,
		})
	}

	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	}}
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	return md5Hash(text)[0:8]
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
