package actor

import (
	"testing"
	"time"

	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/util"
	"melcloud2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMQTTActor(t *testing.T) {

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestMQTTActor(&cfg, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.ActorHealthRequest{}
	result, err := context.RequestFuture(pid, msg, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.True(t, resp.Healthy)

	context.Send(pid, domain.PublishSensorUpdateRequest{
		Event: domain.ClimateStateUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: "9452133005-00:1c:2a:40:d0:01",
			},
			Mode:               "heat",
			CurrentTemperature: 21.5,
			TargetTemperature:  22,
		},
	})

	time.Sleep(500 * time.Millisecond)

	context.Stop(pid)

	as.Shutdown()
}

func TestEvent2MQTTMessages(t *testing.T) {
	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())
	act := NewTestMQTTActor(&cfg, logger)
	as := actorutil.NewActorSystemWithZapLogger(logger)
	pid := as.Root.Spawn(actor.PropsFromProducer(func() actor.Actor { return act }))
	defer as.Root.Stop(pid)

	time.Sleep(200 * time.Millisecond)

	messages := act.event2MQTTMessages(domain.ClimateStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "dev1"},
		Mode:                   "heat",
		CurrentTemperature:     21.53,
		TargetTemperature:      22,
		FanMode:                "auto",
		SwingMode:              "VerticalSwing",
	})
	assert.Len(t, messages, 5)
	assert.Equal(t, "melcloud2mqtt/climate/dev1/mode/state", messages[0].topic)
	assert.Equal(t, "heat", messages[0].message)
	assert.Equal(t, "melcloud2mqtt/climate/dev1/current_temperature/state", messages[1].topic)
	assert.Equal(t, "21.5", messages[1].message)
	assert.Equal(t, "melcloud2mqtt/climate/dev1/temperature/state", messages[2].topic)
	assert.Equal(t, "22.0", messages[2].message)

	messages = act.event2MQTTMessages(domain.FanStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "erv1"},
		On:                     true,
		Percentage:             50,
		PresetMode:             "2",
	})
	assert.Len(t, messages, 3)
	assert.Equal(t, "melcloud2mqtt/fan/erv1/power/state", messages[0].topic)
	assert.Equal(t, "on", messages[0].message)
	assert.Equal(t, "melcloud2mqtt/fan/erv1/percentage/state", messages[1].topic)
	assert.Equal(t, "50", messages[1].message)

	messages = act.event2MQTTMessages(domain.AvailabilityUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "erv1"},
		Component:              domain.COMPONENT_FAN,
		Available:              false,
	})
	assert.Len(t, messages, 1)
	assert.Equal(t, "melcloud2mqtt/fan/erv1/availability", messages[0].topic)
	assert.Equal(t, "offline", messages[0].message)
	assert.True(t, messages[0].retain)
}
