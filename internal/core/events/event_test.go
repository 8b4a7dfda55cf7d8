package events

import (
	"context"
	"testing"

	"melcloud2mqtt/internal/device"
	"melcloud2mqtt/internal/entity"
	"melcloud2mqtt/pkg/melcloud"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testRegistry(t *testing.T, api *melcloud.TestAPI) *entity.Registry {
	t.Helper()
	confs, err := api.ListDevices(context.Background())
	assert.NoError(t, err)

	var wrappers []*device.Wrapper
	for _, dev := range melcloud.NewDevices(api, confs) {
		w := device.NewWrapper(dev, zap.NewNop())
		assert.NoError(t, w.Update(context.Background()))
		wrappers = append(wrappers, w)
	}
	return entity.NewRegistry(wrappers)
}

func TestRegistryComponentsGroupsByDevice(t *testing.T) {
	api := melcloud.NewTestAPI()
	reg := testRegistry(t, api)
	bridge := BridgeDevice("melcloud2mqtt")

	resp := RegistryComponents(reg, bridge)

	assert.Len(t, resp.Climates, 3)
	assert.Len(t, resp.Fans, 1)
	assert.Len(t, resp.Selects, 1)

	// the first component of a device carries the full description
	ata := resp.Climates[0]
	assert.Equal(t, "Living room", ata.Device.Name)
	assert.Equal(t, bridge.Id, ata.Device.ViaDevice)

	// the two zones share one physical device
	assert.Equal(t, resp.Climates[1].Device.Id, resp.Climates[2].Device.Id)
	assert.NotEqual(t, ata.Device.Id, resp.Climates[1].Device.Id)
}

func TestEntityDeviceMatchOnSerialPrefixCollision(t *testing.T) {
	api := melcloud.NewTestAPI()
	// the air conditioner's serial is a proper prefix of the heat pump's
	api.Devices[0].SerialNumber = "180293"

	reg := testRegistry(t, api)
	resp := RegistryComponents(reg, BridgeDevice("melcloud2mqtt"))

	var ataWrapper, atwWrapper *device.Wrapper
	for _, w := range reg.Wrappers {
		switch w.Device().Base().Serial() {
		case "180293":
			ataWrapper = w
		case "1802934005":
			atwWrapper = w
		}
	}
	assert.NotNil(t, ataWrapper)
	assert.NotNil(t, atwWrapper)

	for _, c := range resp.Climates {
		switch c.Id {
		case "180293-00:1c:2a:40:d0:01":
			assert.Equal(t, "mel_"+md5HashShort(ataWrapper.UniqueID()), c.Device.Id)
		case "1802934005-1", "1802934005-2":
			assert.Equal(t, "mel_"+md5HashShort(atwWrapper.UniqueID()), c.Device.Id)
		}
	}
}
