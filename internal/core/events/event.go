package events

import (
	. "pod2mqtt/internal/core/domain"
	"pod2mqtt/pkg/eightsleep"
)

// SnapshotToUpdateEvents projects one device snapshot into sensor update
// events for every (side, attribute) pair of the descriptor table. Defaults
// fill in for absent fields so a partial snapshot still yields a full set.
func SnapshotToUpdateEvents(snap eightsleep.Snapshot) []any {
	var events []any
	for _, side := range eightsleep.Sides() {
		events = append(events, SideToUpdateEvents(side, snap)...)
	}
	return events
}

func SideToUpdateEvents(side eightsleep.Side, snap eightsleep.Snapshot) []any {
	var events []any

	for _, attr := range eightsleep.Attributes(side) {
		mixIn := SensorUpdateEventMixIn{
			Id: SensorId(side, attr.ID),
		}
		switch attr.Kind {
		case eightsleep.KindNumber:
			events = append(events, FloatSensorUpdateEvent{
				SensorUpdateEventMixIn: mixIn,
				Value:                  eightsleep.ResolveNumber(side, attr.ID, snap),
				Decimals:               0,
			})
		case eightsleep.KindBool:
			events = append(events, BinarySensorUpdateEvent{
				SensorUpdateEventMixIn: mixIn,
				Value:                  eightsleep.ResolveBool(side, attr.ID, snap),
			})
		default:
			events = append(events, TextSensorUpdateEvent{
				SensorUpdateEventMixIn: mixIn,
				Value:                  eightsleep.ResolveString(side, attr.ID, snap),
			})
		}
	}

	return events
}

func BridgeOnlineUpdateEvent(online bool) any {
	return BridgeStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BRIDGE_STATE,
		},
		Value: online,
	}
}
