package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/carlmjohnson/versioninfo"

	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/internal/entity"
)

const (
	SENSOR_ID_BRIDGE_STATE = "bridge"

	ENTITY_CLASS_DIAGNOSTIC = "diagnostic"
)

func BridgeDevice(baseTopic string) domain.Device {
	return domain.Device{
		Id:           fmt.Sprintf("melcloud_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "Mitsubishi Electric",
		Model:        "MELCloud bridge",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("MELCloud %s", md5HashShort(baseTopic)),
	}
}

// HVACDevice describes one physical unit for the device registry.
func HVACDevice(w *device.Wrapper) domain.Device {
	base := w.Device().Base()
	return domain.Device{
		Id:           fmt.Sprintf("mel_%s", md5HashShort(w.UniqueID())),
		Manufacturer: "Mitsubishi Electric",
		Model:        w.Model(),
		Name:         base.Name(),
	}
}

func IdDevice(d domain.Device) domain.Device {
	return domain.Device{
		Id:   d.Id,
		Name: d.Name,
	}
}

// BridgeSensors are the diagnostic entities of the bridge itself.
func BridgeSensors(bridgeDevice domain.Device) []domain.GenericSensor {
	return []domain.GenericSensor{
		{
			Device:         bridgeDevice,
			Id:             SENSOR_ID_BRIDGE_STATE,
			SensorType:     domain.COMPONENT_BINARY_SENSOR,
			Name:           "Bridge state",
			DeviceClass:    "connectivity",
			EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
			UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
		},
	}
}

// RegistryComponents maps the entity registry onto discovery components.
// The first component of each physical device carries the full device
// description; the rest reference it by id only.
func RegistryComponents(reg *entity.Registry, bridgeDevice domain.Device) domain.GetDevicesResponse {
	var resp domain.GetDevicesResponse

	devices := map[string]domain.Device{}
	deviceFor := func(w *device.Wrapper) domain.Device {
		if d, ok := devices[w.UniqueID()]; ok {
			return IdDevice(d)
		}
		d := HVACDevice(w)
		d.ViaDevice = bridgeDevice.Id
		devices[w.UniqueID()] = d
		return d
	}

	for _, c := range reg.Climates {
		resp.Climates = append(resp.Climates, domain.GenericClimate{
			Device:     deviceFor(wrapperFor(reg, c.UniqueID())),
			Id:         c.UniqueID(),
			Name:       c.Name(),
			UniqueId:   uniqueId(bridgeDevice.Id, c.UniqueID()),
			Modes:      c.HVACModes(),
			FanModes:   climateFanModes(c),
			SwingModes: climateSwingModes(c),
			MinTemp:    c.MinTemp(),
			MaxTemp:    c.MaxTemp(),
			TempStep:   climateTempStep(c),
		})
	}
	for _, f := range reg.Fans {
		resp.Fans = append(resp.Fans, domain.GenericFan{
			Device:      deviceFor(wrapperFor(reg, f.UniqueID())),
			Id:          f.UniqueID(),
			Name:        f.Name(),
			UniqueId:    uniqueId(bridgeDevice.Id, f.UniqueID()),
			PresetModes: f.PresetModes(),
			SpeedCount:  f.SpeedCount(),
			Icon:        "mdi:fan",
		})
	}
	for _, s := range reg.Selects {
		resp.Selects = append(resp.Selects, domain.GenericSelect{
			Device:   deviceFor(wrapperFor(reg, s.UniqueID())),
			Id:       s.UniqueID(),
			Name:     s.Name(),
			UniqueId: uniqueId(bridgeDevice.Id, s.UniqueID()),
			Options:  s.Options(),
			Icon:     "mdi:swap-horizontal",
		})
	}
	for _, s := range reg.Sensors {
		resp.Sensors = append(resp.Sensors, domain.GenericSensor{
			Device:            deviceFor(wrapperFor(reg, s.UniqueID())),
			Id:                s.UniqueID(),
			SensorType:        domain.COMPONENT_SENSOR,
			Name:              s.Name(),
			UniqueId:          uniqueId(bridgeDevice.Id, s.UniqueID()),
			UnitOfMeasurement: s.Unit,
			StateClass:        s.StateClass,
			DeviceClass:       s.DeviceClass,
			Icon:              s.Icon,
		})
	}
	for _, s := range reg.BinarySensors {
		resp.BinarySensors = append(resp.BinarySensors, domain.GenericSensor{
			Device:      deviceFor(wrapperFor(reg, s.UniqueID())),
			Id:          s.UniqueID(),
			SensorType:  domain.COMPONENT_BINARY_SENSOR,
			Name:        s.Name(),
			UniqueId:    uniqueId(bridgeDevice.Id, s.UniqueID()),
			DeviceClass: s.DeviceClass,
		})
	}
	return resp
}

// RegistryToUpdateEvents reads the current state of every entity into
// publishable update events.
func RegistryToUpdateEvents(reg *entity.Registry) []any {
	var events []any

	for _, c := range reg.Climates {
		events = append(events, ClimateUpdateEvent(c))
		events = append(events, availabilityEvent(domain.COMPONENT_CLIMATE, c.UniqueID(), c.Available()))
	}
	for _, f := range reg.Fans {
		events = append(events, FanUpdateEvent(f))
		events = append(events, availabilityEvent(domain.COMPONENT_FAN, f.UniqueID(), f.Available()))
	}
	for _, s := range reg.Selects {
		events = append(events, SelectUpdateEvent(s))
		events = append(events, availabilityEvent(domain.COMPONENT_SELECT, s.UniqueID(), s.Available()))
	}
	for _, s := range reg.Sensors {
		events = append(events, domain.FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: s.UniqueID()},
			Value:                  s.Value(),
			Decimals:               1,
		})
	}
	for _, s := range reg.BinarySensors {
		events = append(events, domain.BinarySensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: s.UniqueID()},
			Value:                  s.Value(),
		})
	}
	return events
}

func ClimateUpdateEvent(c entity.Climate) domain.ClimateStateUpdateEvent {
	ev := domain.ClimateStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: c.UniqueID()},
		Mode:                   c.HVACMode(),
		CurrentTemperature:     c.CurrentTemperature(),
		TargetTemperature:      c.TargetTemperature(),
	}
	if ata, ok := c.(*entity.AtaClimate); ok {
		ev.FanMode = ata.FanMode()
		ev.SwingMode = ata.SwingMode()
	}
	return ev
}

func FanUpdateEvent(f *entity.ErvFan) domain.FanStateUpdateEvent {
	return domain.FanStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: f.UniqueID()},
		On:                     f.IsOn(),
		Percentage:             f.Percentage(),
		PresetMode:             f.PresetMode(),
	}
}

func SelectUpdateEvent(s *entity.ErvVentilationSelect) domain.SelectStateUpdateEvent {
	return domain.SelectStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: s.UniqueID()},
		Option:                 s.Current(),
	}
}

func availabilityEvent(component, id string, available bool) domain.AvailabilityUpdateEvent {
	return domain.AvailabilityUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: id},
		Component:              component,
		Available:              available,
	}
}

func climateFanModes(c entity.Climate) []string {
	if ata, ok := c.(*entity.AtaClimate); ok {
		return ata.FanModes()
	}
	return nil
}

func climateSwingModes(c entity.Climate) []string {
	if ata, ok := c.(*entity.AtaClimate); ok {
		return ata.SwingModes()
	}
	return nil
}

func climateTempStep(c entity.Climate) float64 {
	if ata, ok := c.(*entity.AtaClimate); ok {
		return ata.TargetTemperatureStep()
	}
	return 0.5
}

// all entity ids start with "<serial>-", so the delimiter keeps a serial
// that prefixes a longer one from matching the wrong device
func wrapperFor(reg *entity.Registry, entityID string) *device.Wrapper {
	for _, w := range reg.Wrappers {
		if strings.HasPrefix(entityID, w.Device().Base().Serial()+"-") {
			return w
		}
	}
	panic(fmt.Sprintf("no device for entity id %s", entityID))
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, md5HashShort(id))
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}
