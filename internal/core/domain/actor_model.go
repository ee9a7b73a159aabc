package domain

import "pod2mqtt/pkg/eightsleep"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_DEVICE       = "device"
	ACTOR_ID_MONITOR      = "monitor"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetDeviceInfoRequest struct {
	ActorRequestMixIn
}

type GetDeviceInfoResponse struct {
	ActorResponseMixIn
	Info eightsleep.DeviceInfo
}

// PollDeviceRequest asks the device actor to fetch a fresh snapshot and
// reply with the newest one. A failed poll replies with the previous
// snapshot; only a lifecycle violation carries a response error.
type PollDeviceRequest struct {
	ActorRequestMixIn
}

type PollDeviceResponse struct {
	ActorResponseMixIn
	Snapshot eightsleep.Snapshot
}

// GetDeviceStatusRequest reads the latest known snapshot without touching
// the network.
type GetDeviceStatusRequest struct {
	ActorRequestMixIn
}

type GetDeviceStatusResponse struct {
	ActorResponseMixIn
	Snapshot eightsleep.Snapshot
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
