package actor

import (
	"testing"
	"time"

	"melcloud2mqtt/internal/core/domain"
	"melcloud2mqtt/internal/entity"
	"melcloud2mqtt/internal/util"
	"melcloud2mqtt/internal/util/actorutil"
	"melcloud2mqtt/pkg/melcloud"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func spawnMelCloudActor(t *testing.T) (*actor.ActorSystem, *actor.RootContext, *actor.PID, *melcloud.TestAPI) {
	t.Helper()

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())
	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	api := melcloud.NewTestAPI()
	props := actor.PropsFromProducer(func() actor.Actor { return NewMelCloudActor(api, &cfg, logger) })
	pid := context.Spawn(props)
	return as, context, pid, api
}

func TestMelCloudActorGetDevices(t *testing.T) {
	as, context, pid, _ := spawnMelCloudActor(t)
	defer as.Shutdown()

	res, err := context.RequestFuture(pid, domain.GetDevicesRequest{}, 5*time.Second).Result()
	require.NoError(t, err)
	devices, ok := res.(domain.GetDevicesResponse)
	require.True(t, ok)

	// one climate for the air-to-air unit, one per heat pump zone
	assert.Len(t, devices.Climates, 3)
	assert.Len(t, devices.Fans, 1)
	assert.Len(t, devices.Selects, 1)
	assert.NotEmpty(t, devices.Sensors)
	// device error state plus the bridge state sensor
	assert.Len(t, devices.BinarySensors, 2)

	context.Stop(pid)
}

func TestMelCloudActorRefresh(t *testing.T) {
	as, context, pid, _ := spawnMelCloudActor(t)
	defer as.Shutdown()

	res, err := context.RequestFuture(pid, domain.RefreshDevicesRequest{}, 5*time.Second).Result()
	require.NoError(t, err)
	refresh, ok := res.(domain.RefreshDevicesResponse)
	require.True(t, ok)
	require.False(t, refresh.HasResponseError())

	var climates, fans, selects int
	for _, ev := range refresh.Events {
		switch ev.(type) {
		case domain.ClimateStateUpdateEvent:
			climates++
		case domain.FanStateUpdateEvent:
			fans++
		case domain.SelectStateUpdateEvent:
			selects++
		}
	}
	assert.Equal(t, 3, climates)
	assert.Equal(t, 1, fans)
	assert.Equal(t, 1, selects)

	context.Stop(pid)
}

func TestMelCloudActorClimateCommand(t *testing.T) {
	as, context, pid, api := spawnMelCloudActor(t)
	defer as.Shutdown()

	res, err := context.RequestFuture(pid, domain.EntityCommandRequest{
		Component: domain.COMPONENT_CLIMATE,
		EntityId:  "9452133005-00:1c:2a:40:d0:01",
		Command:   "mode",
		Payload:   "cool",
	}, 5*time.Second).Result()
	require.NoError(t, err)
	resp, ok := res.(domain.EntityCommandResponse)
	require.True(t, ok)
	require.False(t, resp.HasResponseError())
	require.Len(t, resp.Events, 1)

	ev, ok := resp.Events[0].(domain.ClimateStateUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, "cool", ev.Mode)
	assert.Equal(t, 1, api.SetCalls)

	context.Stop(pid)
}

func TestMelCloudActorRejectsInvalidCommand(t *testing.T) {
	as, context, pid, api := spawnMelCloudActor(t)
	defer as.Shutdown()

	res, err := context.RequestFuture(pid, domain.EntityCommandRequest{
		Component: domain.COMPONENT_CLIMATE,
		EntityId:  "9452133005-00:1c:2a:40:d0:01",
		Command:   "mode",
		Payload:   "sauna",
	}, 5*time.Second).Result()
	require.NoError(t, err)
	resp, ok := res.(domain.EntityCommandResponse)
	require.True(t, ok)
	require.True(t, resp.HasResponseError())
	assert.ErrorIs(t, resp.GetResponseError(), entity.ErrInvalidValue)
	assert.Equal(t, 0, api.SetCalls)

	context.Stop(pid)
}

func TestMelCloudActorFanCommand(t *testing.T) {
	as, context, pid, api := spawnMelCloudActor(t)
	defer as.Shutdown()

	res, err := context.RequestFuture(pid, domain.EntityCommandRequest{
		Component: domain.COMPONENT_FAN,
		EntityId:  "6711204005-00:1c:2a:40:d0:03",
		Command:   "percentage",
		Payload:   "75",
	}, 5*time.Second).Result()
	require.NoError(t, err)
	resp, ok := res.(domain.EntityCommandResponse)
	require.True(t, ok)
	require.False(t, resp.HasResponseError())
	require.Len(t, resp.Events, 1)

	ev, ok := resp.Events[0].(domain.FanStateUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, 75, ev.Percentage)
	assert.Equal(t, 1, api.SetCalls)

	context.Stop(pid)
}
