package actor

import (
	"testing"
	"time"

	adactor "melcloud2mqtt/internal/adapter/actor"
	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/util"
	"melcloud2mqtt/pkg/melcloud"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHADiscoveryActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	melcloudPid := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewMelCloudActor(melcloud.NewTestAPI(), &cfg, logger)
	}))

	received := make(chan domain.PublishDiscoveryRequest, 1)
	mqttStub := context.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
		switch msg := ctx.Message().(type) {
		case domain.ActorHealthRequest:
			ctx.Respond(domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: true,
			})
		case domain.PublishDiscoveryRequest:
			received <- msg
		}
	}))

	discoveryPid := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&cfg, melcloudPid, mqttStub, logger)
	}))

	select {
	case msg := <-received:
		assert.Len(t, msg.Climates, 3)
		assert.Len(t, msg.Fans, 1)
		assert.Len(t, msg.Selects, 1)
		assert.NotEmpty(t, msg.Sensors)
	case <-time.After(10 * time.Second):
		t.Error("no discovery publication received")
	}

	context.Stop(discoveryPid)
	context.Stop(mqttStub)
	context.Stop(melcloudPid)

	as.Shutdown()
}
