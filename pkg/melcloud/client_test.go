package melcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("user@example.com", "secret", 0)
	client.baseURL = server.URL
	return client
}

func TestLoginStoresContextKey(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Login/ClientLogin", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["Email"])
		assert.Equal(t, appVersion, body["AppVersion"])
		_, _ = w.Write([]byte(`{"ErrorId": null, "LoginData": {"ContextKey": "ctx-123"}}`))
	})

	ok, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ctx-123", client.contextKey)
}

func TestLoginRejectedCredentials(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ErrorId": 1, "LoginData": null}`))
	})

	ok, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, client.contextKey)
}

func TestListDevicesFlattensAndDeduplicates(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/User/ListDevices", r.URL.Path)
		assert.Equal(t, "ctx-123", r.Header.Get("X-MitsContextKey"))
		_, _ = w.Write([]byte(`[{
			"Structure": {
				"Devices": [{"DeviceID": 1, "DeviceName": "a", "Type": 0}],
				"Areas": [{"Devices": [{"DeviceID": 1, "DeviceName": "a", "Type": 0}]}],
				"Floors": [{
					"Devices": [{"DeviceID": 2, "DeviceName": "b", "Type": 1}],
					"Areas": [{"Devices": [{"DeviceID": 3, "DeviceName": "c", "Type": 3}]}]
				}]
			}
		}]`))
	})
	client.contextKey = "ctx-123"

	devices, err := client.ListDevices(context.Background())
	assert.NoError(t, err)
	assert.Len(t, devices, 3)
	assert.Equal(t, 1, devices[0].DeviceID)
	assert.Equal(t, 2, devices[1].DeviceID)
	assert.Equal(t, 3, devices[2].DeviceID)
}

func TestGetDeviceState(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Device/Get", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		assert.Equal(t, "7", r.URL.Query().Get("buildingID"))
		_, _ = w.Write([]byte(`{"DeviceID": 42, "Power": true, "OperationMode": 3, "SetTemperature": 24.5}`))
	})

	state, err := client.GetDeviceState(context.Background(), 42, 7)
	assert.NoError(t, err)
	assert.True(t, state.Power)
	assert.Equal(t, AtaOperationModeCool, state.OperationMode)
	assert.Equal(t, 24.5, state.SetTemperature)
}

func TestSetDeviceStateSelectsEndpointByType(t *testing.T) {
	var gotPath string
	var gotBody DeviceState
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(gotBody)
	})

	state := &DeviceState{DeviceID: 5, DeviceType: DeviceTypeErv, EffectiveFlags: flagFanSpeed}
	updated, err := client.SetDeviceState(context.Background(), state)
	assert.NoError(t, err)
	assert.Equal(t, "/Device/SetErv", gotPath)
	assert.True(t, gotBody.HasPendingCommand)
	assert.Equal(t, flagFanSpeed, updated.EffectiveFlags)
}

func TestAPIErrorOnBadStatus(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetDeviceState(context.Background(), 1, 1)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.False(t, IsConnectionError(err))
}

func TestIsConnectionError(t *testing.T) {
	client := NewClient("user@example.com", "secret", 0)
	client.baseURL = "http://127.0.0.1:1"

	_, err := client.GetDeviceState(context.Background(), 1, 1)
	assert.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.False(t, IsConnectionError(nil))
}

func TestLastCommunicationTime(t *testing.T) {
	state := &DeviceState{LastCommunication: "2024-02-10T08:31:22.213"}
	parsed, err := state.LastCommunicationTime()
	assert.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 22, parsed.Second())

	state.LastCommunication = "2024-02-10T08:31:22"
	_, err = state.LastCommunicationTime()
	assert.NoError(t, err)
}
