package actor

import (
	"errors"
	"fmt"
	"time"

	"melcloud2mqtt/internal/config"
	"melcloud2mqtt/internal/core/domain"
	. "melcloud2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// HADiscoveryActor publishes the Home Assistant discovery configuration
// once both the cloud adapter and the MQTT connection are up, then idles.
type HADiscoveryActor struct {
	ActorWithStates
	config               *config.Config
	stash                *Stash
	melcloudActor        *actor.PID
	mqttActor            *actor.PID
	melcloudActorHealthy bool
	mqttActorHealthy     bool
	healthyRecv          int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, melcloudActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:        config,
		melcloudActor: melcloudActor,
		mqttActor:     mqttActor,
		stash:         &Stash{},
		logger:        ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(HADStartingState{
		actor: act,
	})
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type HADStartingState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADStartingState) Name() string {
	return "starting"
}

func (state HADStartingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.actor.logger.Debug("hadiscovery@starting started")

		// Check MELCloud and MQTT actor healthy
		state.actor.healthyRecv = 0
		state.actor.melcloudActorHealthy = false
		state.actor.mqttActorHealthy = false
		// MELCloud Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.melcloudActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MELCLOUD,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.actor.Become(HADWaitingHealthyState{
			actor: state.actor,
		})
	case *actor.Restarting:
	default:
		state.actor.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting healthy state

type HADWaitingHealthyState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADWaitingHealthyState) Name() string {
	return "waitingHealthy"
}

func (state HADWaitingHealthyState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.actor.logger.Debug("hadiscovery@waitingHealthy ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.actor.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_MELCLOUD:
				state.actor.melcloudActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.actor.mqttActorHealthy = true
			}
		}
		if state.actor.healthyRecv == 2 {

			if state.actor.melcloudActorHealthy && state.actor.mqttActorHealthy {
				// Ask the cloud adapter for the discovered entities
				PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.melcloudActor, domain.GetDevicesRequest{}, 5*time.Second), func(err error) any {
					return domain.GetDevicesResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.actor.Become(HADWaitingDevicesState{
					actor: state.actor,
				})
				state.actor.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or MELCloud Actor are not healthy"))
			}
		}
	default:
		state.actor.logger.Debug("hadiscovery@waitingHealthy: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting devices state

type HADWaitingDevicesState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADWaitingDevicesState) Name() string {
	return "waitingDevices"
}

func (state HADWaitingDevicesState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.actor.logger.Debug("hadiscovery@waitingDevices: GetDevicesResponse",
			zap.Int("climates", len(msg.Climates)), zap.Int("fans", len(msg.Fans)),
			zap.Int("selects", len(msg.Selects)), zap.Int("sensors", len(msg.Sensors)))

		ctx.Send(state.actor.mqttActor, domain.PublishDiscoveryRequest{
			Climates:      msg.Climates,
			Fans:          msg.Fans,
			Selects:       msg.Selects,
			Sensors:       msg.Sensors,
			BinarySensors: msg.BinarySensors,
		})
		state.actor.Become(HADDoneState{
			actor: state.actor,
		})

	default:
		state.actor.logger.Debug("hadiscovery@waitingDevices: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// Done state

type HADDoneState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADDoneState) Name() string {
	return "done"
}

func (state HADDoneState) Receive(ctx actor.Context) {
}
