package device

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"melcloud2mqtt/pkg/melcloud"
)

// DefaultUpdateInterval is the minimum spacing between cloud refreshes of a
// single device.
const DefaultUpdateInterval = 60 * time.Second

// Wrapper owns one cloud device and adds the bridge-side behavior on top of
// it: refresh throttling, availability tracking and identity attributes.
// It is confined to a single goroutine (the owning actor).
type Wrapper struct {
	device melcloud.TypedDevice
	logger *zap.Logger

	minInterval time.Duration
	lastUpdate  time.Time
	available   bool

	identityAttrs map[string]any

	// test seam
	now func() time.Time
}

func NewWrapper(device melcloud.TypedDevice, logger *zap.Logger) *Wrapper {
	return &Wrapper{
		device:      device,
		logger:      logger,
		minInterval: DefaultUpdateInterval,
		now:         time.Now,
	}
}

func (w *Wrapper) Device() melcloud.TypedDevice { return w.device }
func (w *Wrapper) Available() bool              { return w.available }

// Update refreshes the device state, at most once per minInterval. A
// transport failure marks the device unavailable instead of returning the
// error; a later successful refresh marks it available again.
func (w *Wrapper) Update(ctx context.Context) error {
	now := w.now()
	if !w.lastUpdate.IsZero() && now.Sub(w.lastUpdate) < w.minInterval {
		return nil
	}
	w.lastUpdate = now

	err := w.device.Base().Update(ctx)
	if err == nil {
		w.available = true
		return nil
	}
	if melcloud.IsConnectionError(err) {
		if w.available {
			w.logger.Warn("device became unavailable",
				zap.String("device", w.device.Base().Name()),
				zap.Error(err))
		}
		w.available = false
		return nil
	}
	return err
}

// Set writes properties immediately, bypassing the refresh throttle.
func (w *Wrapper) Set(ctx context.Context, properties map[string]any) error {
	err := w.device.Base().Set(ctx, properties)
	if err == nil {
		w.available = true
		return nil
	}
	if melcloud.IsConnectionError(err) {
		if w.available {
			w.logger.Warn("device became unavailable",
				zap.String("device", w.device.Base().Name()),
				zap.Error(err))
		}
		w.available = false
		return nil
	}
	return err
}

// Model describes the cloud adapter and the attached units, for device
// registry info.
func (w *Wrapper) Model() string {
	base := w.device.Base()
	model := fmt.Sprintf("MELCloud IF (MAC: %s)", base.Mac())
	if units := base.UnitModels(); units != "" {
		model += " - " + units
	}
	return model
}

// ExtraAttributes returns the identity attributes of the device plus the
// current sub-unit inventory. The identity part is computed once and reused;
// units are re-read on every call.
func (w *Wrapper) ExtraAttributes() map[string]any {
	if w.identityAttrs == nil {
		base := w.device.Base()
		w.identityAttrs = map[string]any{
			"device_id":     base.DeviceID(),
			"serial_number": base.Serial(),
			"mac_address":   base.Mac(),
		}
	}
	attrs := make(map[string]any, len(w.identityAttrs)+1)
	for k, v := range w.identityAttrs {
		attrs[k] = v
	}
	units := w.device.Base().Conf().Device.Units
	if len(units) > 0 {
		list := make([]map[string]string, 0, len(units))
		for _, u := range units {
			list = append(list, map[string]string{
				"model":         u.Model,
				"serial_number": u.SerialNumber,
			})
		}
		attrs["units"] = list
	}
	return attrs
}

// UniqueID is the device-scoped id used for entity ids and MQTT topics.
func (w *Wrapper) UniqueID() string {
	base := w.device.Base()
	return fmt.Sprintf("%s-%s", base.Serial(), base.Mac())
}

// ZoneUniqueID is the id of one air-to-water zone.
func (w *Wrapper) ZoneUniqueID(zone *melcloud.Zone) string {
	return fmt.Sprintf("%s-%d", w.device.Base().Serial(), zone.Index())
}
