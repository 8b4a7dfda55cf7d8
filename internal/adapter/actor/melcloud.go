package actor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"melcloud2mqtt/internal/config"
	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/core/events"
	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/internal/entity"
	"melcloud2mqtt/internal/metrics"
	"melcloud2mqtt/internal/mqtt"
	"melcloud2mqtt/internal/util/actorutil"
	"melcloud2mqtt/pkg/melcloud"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const (
	MELCLOUD_ACTOR_ID = "melcloud"

	cloudRequestTimeout = 30 * time.Second
	refreshTimeout      = 60 * time.Second
)

// MelCloudActor owns the cloud session and the entities built from the
// discovered devices. Cloud calls run as background tasks while the actor
// stashes everything else.
type MelCloudActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	api      melcloud.API
	cfg      *config.Config
	logger   *zap.Logger

	registry     *entity.Registry
	bridgeDevice domain.Device
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewMelCloudActor(api melcloud.API, cfg *config.Config, logger *zap.Logger) *MelCloudActor {
	act := &MelCloudActor{
		api:          api,
		cfg:          cfg,
		behavior:     actor.NewBehavior(),
		stash:        &actorutil.Stash{},
		logger:       actorutil.ActorLogger("melcloud", logger),
		bridgeDevice: events.BridgeDevice(cfg.MQTT.BaseTopic),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MelCloudActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MelCloudActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("melcloud@starting started")
		if err := state.start(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.registry = nil
	default:
		state.logger.Debug("melcloud@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// start logs in, lists the account devices and performs the first state
// fetch. Any failure panics so the supervisor retries with backoff.
func (state *MelCloudActor) start() error {
	cctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	ok, err := state.api.Login(cctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("MELCloud rejected the configured credentials")
	}
	confs, err := state.api.ListDevices(cctx)
	if err != nil {
		return err
	}
	var wrappers []*device.Wrapper
	for _, dev := range melcloud.NewDevices(state.api, confs) {
		wrappers = append(wrappers, device.NewWrapper(dev, state.logger))
	}
	for _, w := range wrappers {
		if err := w.Update(cctx); err != nil {
			return err
		}
	}
	state.registry = entity.NewRegistry(wrappers)
	state.logger.Info("MELCloud session ready", zap.Int("devices", len(wrappers)))
	return nil
}

func (state *MelCloudActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("melcloud@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      MELCLOUD_ACTOR_ID,
			Healthy: state.registry != nil,
			State:   "idle",
		})
	case domain.GetDevicesRequest:
		state.logger.Debug("melcloud@default: GetDevicesRequest")
		resp := events.RegistryComponents(state.registry, state.bridgeDevice)
		resp.BinarySensors = append(resp.BinarySensors, events.BridgeSensors(state.bridgeDevice)...)
		actorutil.ForRequest(msg).Respond(ctx, resp)
	case domain.RefreshDevicesRequest:
		state.logger.Debug("melcloud@default: RefreshDevicesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.refreshDevices),
			mapTaskResult[domain.RefreshDevicesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.RefreshDevicesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(refreshTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCloud)
	case domain.EntityCommandRequest:
		state.logger.Debug("melcloud@default: EntityCommandRequest",
			zap.String("component", msg.Component), zap.String("entity", msg.EntityId),
			zap.String("command", msg.Command))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.EntityCommandResponse, error) {
			return state.executeCommand(msg)
		}),
			mapTaskResult[domain.EntityCommandResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.EntityCommandResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(cloudRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCloud)
	default:
		state.logger.Debug("melcloud@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *MelCloudActor) WaitingCloud(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("melcloud@WaitingCloud backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("melcloud@WaitingCloud stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *MelCloudActor) refreshDevices() (*domain.RefreshDevicesResponse, error) {
	cctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	metrics.CloudRequests.WithLabelValues("refresh").Inc()
	for _, w := range a.registry.Wrappers {
		if err := w.Update(cctx); err != nil {
			logger.Error(err)
			metrics.CloudErrors.WithLabelValues("refresh").Inc()
			return nil, err
		}
		metrics.SetDeviceAvailable(w.UniqueID(), w.Available())
	}
	for _, c := range a.registry.Climates {
		metrics.RoomTemperature.WithLabelValues(c.UniqueID()).Set(c.CurrentTemperature())
	}
	return &domain.RefreshDevicesResponse{
		Events: events.RegistryToUpdateEvents(a.registry),
	}, nil
}

// executeCommand applies one entity command and reports the resulting state
// of the touched entity.
func (a *MelCloudActor) executeCommand(cmd domain.EntityCommandRequest) (*domain.EntityCommandResponse, error) {
	cctx, cancel := context.WithTimeout(context.Background(), cloudRequestTimeout)
	defer cancel()

	metrics.Commands.WithLabelValues(cmd.Component).Inc()

	var updates []any
	switch cmd.Component {
	case domain.COMPONENT_CLIMATE:
		climate, ok := a.registry.ClimateByID(cmd.EntityId)
		if !ok {
			return nil, fmt.Errorf("unknown climate entity %q", cmd.EntityId)
		}
		if err := a.applyClimateCommand(cctx, climate, cmd); err != nil {
			logger.Error(err)
			return nil, err
		}
		updates = append(updates, events.ClimateUpdateEvent(climate))
	case domain.COMPONENT_FAN:
		fan, ok := a.registry.FanByID(cmd.EntityId)
		if !ok {
			return nil, fmt.Errorf("unknown fan entity %q", cmd.EntityId)
		}
		if err := a.applyFanCommand(cctx, fan, cmd); err != nil {
			logger.Error(err)
			return nil, err
		}
		updates = append(updates, events.FanUpdateEvent(fan))
	case domain.COMPONENT_SELECT:
		sel, ok := a.registry.SelectByID(cmd.EntityId)
		if !ok {
			return nil, fmt.Errorf("unknown select entity %q", cmd.EntityId)
		}
		if cmd.Command != "option" {
			return nil, fmt.Errorf("%w: select command %q", entity.ErrInvalidValue, cmd.Command)
		}
		if err := sel.Select(cctx, cmd.Payload); err != nil {
			logger.Error(err)
			return nil, err
		}
		updates = append(updates, events.SelectUpdateEvent(sel))
	default:
		return nil, fmt.Errorf("unknown component %q", cmd.Component)
	}
	return &domain.EntityCommandResponse{Events: updates}, nil
}

func (a *MelCloudActor) applyClimateCommand(cctx context.Context, climate entity.Climate, cmd domain.EntityCommandRequest) error {
	switch cmd.Command {
	case mqtt.CLIMATE_ATTR_MODE:
		return climate.SetHVACMode(cctx, cmd.Payload)
	case mqtt.CLIMATE_ATTR_TEMPERATURE:
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return fmt.Errorf("%w: temperature %q", entity.ErrInvalidValue, cmd.Payload)
		}
		return climate.SetTargetTemperature(cctx, value)
	case mqtt.CLIMATE_ATTR_POWER:
		ata, ok := climate.(*entity.AtaClimate)
		if !ok {
			if parseOnOff(cmd.Payload) {
				return fmt.Errorf("%w: power command", entity.ErrInvalidValue)
			}
			return climate.SetHVACMode(cctx, entity.HVACModeOff)
		}
		if parseOnOff(cmd.Payload) {
			return ata.TurnOn(cctx)
		}
		return ata.TurnOff(cctx)
	case mqtt.CLIMATE_ATTR_FAN_MODE:
		ata, ok := climate.(*entity.AtaClimate)
		if !ok {
			return fmt.Errorf("%w: fan mode command", entity.ErrInvalidValue)
		}
		return ata.SetFanMode(cctx, cmd.Payload)
	case mqtt.CLIMATE_ATTR_SWING_MODE:
		ata, ok := climate.(*entity.AtaClimate)
		if !ok {
			return fmt.Errorf("%w: swing mode command", entity.ErrInvalidValue)
		}
		return ata.SetSwingMode(cctx, cmd.Payload)
	}
	return fmt.Errorf("%w: climate command %q", entity.ErrInvalidValue, cmd.Command)
}

func (a *MelCloudActor) applyFanCommand(cctx context.Context, fan *entity.ErvFan, cmd domain.EntityCommandRequest) error {
	switch cmd.Command {
	case mqtt.FAN_ATTR_POWER:
		if parseOnOff(cmd.Payload) {
			return fan.TurnOn(cctx)
		}
		return fan.TurnOff(cctx)
	case mqtt.FAN_ATTR_PERCENTAGE:
		value, err := strconv.Atoi(cmd.Payload)
		if err != nil {
			return fmt.Errorf("%w: percentage %q", entity.ErrInvalidValue, cmd.Payload)
		}
		return fan.SetPercentage(cctx, value)
	case mqtt.FAN_ATTR_PRESET_MODE:
		return fan.SetPresetMode(cctx, cmd.Payload)
	}
	return fmt.Errorf("%w: fan command %q", entity.ErrInvalidValue, cmd.Command)
}

func parseOnOff(payload string) bool {
	return strings.EqualFold(payload, mqtt.MQTT_PAYLOAD_ON)
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
