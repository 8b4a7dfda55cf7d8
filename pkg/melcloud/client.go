package melcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL    = "https://app.melcloud.com/Mitsubishi.Wifi.Client"
	appVersion = "1.19.1.1"

	loginTimeout = 10 * time.Second
)

// API is the cloud side of the bridge. Implementations must be safe for
// concurrent use.
type API interface {
	// Login authenticates and stores the access token for later calls.
	// A false return with a nil error means the service rejected the
	// credentials.
	Login(ctx context.Context) (bool, error)
	// ListDevices returns every device of the account, duplicates removed.
	ListDevices(ctx context.Context) ([]*DeviceConf, error)
	// GetDeviceState fetches the live state of one device.
	GetDeviceState(ctx context.Context, deviceID, buildingID int) (*DeviceState, error)
	// SetDeviceState submits a state write. The EffectiveFlags of the state
	// select which fields the cloud applies.
	SetDeviceState(ctx context.Context, state *DeviceState) (*DeviceState, error)
}

// APIError is a non-2xx response from the cloud service.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("melcloud: %s returned status %d", e.Endpoint, e.StatusCode)
}

// IsConnectionError reports whether err is a transport level failure rather
// than a service rejection. Only these errors mark a device unavailable.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
	password   string
	language   int

	contextKey string
}

func NewClient(email, password string, language int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    BaseURL,
		email:      email,
		password:   password,
		language:   language,
	}
}

func (c *Client) Login(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	body := map[string]any{
		"Email":           c.email,
		"Password":        c.password,
		"Language":        c.language,
		"AppVersion":      appVersion,
		"Persist":         true,
		"CaptchaResponse": nil,
	}
	var resp loginResponse
	if err := c.post(ctx, "/Login/ClientLogin", body, &resp); err != nil {
		return false, err
	}
	if resp.ErrorId != nil {
		return false, nil
	}
	if resp.LoginData == nil || resp.LoginData.ContextKey == "" {
		return false, fmt.Errorf("melcloud: login response carries no context key")
	}
	c.contextKey = resp.LoginData.ContextKey
	return true, nil
}

func (c *Client) ListDevices(ctx context.Context) ([]*DeviceConf, error) {
	var buildings []Building
	if err := c.get(ctx, "/User/ListDevices", &buildings); err != nil {
		return nil, err
	}

	var devices []*DeviceConf
	seen := map[int]bool{}
	add := func(list []*DeviceConf) {
		for _, d := range list {
			if d == nil || seen[d.DeviceID] {
				continue
			}
			seen[d.DeviceID] = true
			devices = append(devices, d)
		}
	}
	for i := range buildings {
		s := &buildings[i].Structure
		add(s.Devices)
		for j := range s.Areas {
			add(s.Areas[j].Devices)
		}
		for j := range s.Floors {
			add(s.Floors[j].Devices)
			for k := range s.Floors[j].Areas {
				add(s.Floors[j].Areas[k].Devices)
			}
		}
	}
	return devices, nil
}

func (c *Client) GetDeviceState(ctx context.Context, deviceID, buildingID int) (*DeviceState, error) {
	path := fmt.Sprintf("/Device/Get?id=%d&buildingID=%d", deviceID, buildingID)
	var state DeviceState
	if err := c.get(ctx, path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) SetDeviceState(ctx context.Context, state *DeviceState) (*DeviceState, error) {
	var path string
	switch state.DeviceType {
	case DeviceTypeAta:
		path = "/Device/SetAta"
	case DeviceTypeAtw:
		path = "/Device/SetAtw"
	case DeviceTypeErv:
		path = "/Device/SetErv"
	default:
		return nil, fmt.Errorf("melcloud: cannot write state for device type %d", state.DeviceType)
	}
	state.HasPendingCommand = true
	var updated DeviceState
	if err := c.post(ctx, path, state, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	if c.contextKey != "" {
		req.Header.Set("X-MitsContextKey", c.contextKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: path}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
