package domain

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_MELCLOUD     = "melcloud"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

// Entity component kinds, matching the MQTT topic scheme.
const (
	COMPONENT_CLIMATE       = "climate"
	COMPONENT_FAN           = "fan"
	COMPONENT_SELECT        = "select"
	COMPONENT_SENSOR        = "sensor"
	COMPONENT_BINARY_SENSOR = "binary_sensor"
)

type GetDevicesRequest struct {
	ActorRequestMixIn
}

type GetDevicesResponse struct {
	ActorResponseMixIn
	Climates      []GenericClimate
	Fans          []GenericFan
	Selects       []GenericSelect
	Sensors       []GenericSensor
	BinarySensors []GenericSensor
}

// RefreshDevicesRequest asks the cloud adapter to refresh every device and
// report the resulting state as update events.
type RefreshDevicesRequest struct {
	ActorRequestMixIn
}

type RefreshDevicesResponse struct {
	ActorResponseMixIn
	Events []any
}

// EntityCommandRequest is a user command received over MQTT, addressed to
// one entity.
type EntityCommandRequest struct {
	ActorRequestMixIn
	Component string
	EntityId  string
	Command   string
	Payload   string
}

// EntityCommandResponse carries the state updates caused by the command.
type EntityCommandResponse struct {
	ActorResponseMixIn
	Events []any
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
	Climates      []GenericClimate
	Fans          []GenericFan
	Selects       []GenericSelect
	Sensors       []GenericSensor
	BinarySensors []GenericSensor
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
