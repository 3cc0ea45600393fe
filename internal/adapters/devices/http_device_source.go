package devices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/platform/obs"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPDeviceSource implements DeviceSource against the analytics API's
// maintenance map endpoint.
//
// The source is safe for concurrent use.
type HTTPDeviceSource struct {
	session *http.Client
	baseURL string
	token   string
	backoff time.Duration
}

func NewHTTPDeviceSource(baseURL, token string) (*HTTPDeviceSource, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("device API base URL is empty")
	}

	return &HTTPDeviceSource{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		token:   token,
		backoff: 200 * time.Millisecond,
	}, nil
}

func (h *HTTPDeviceSource) ListDevices(ctx context.Context, periodDays int) (_ []domain.Device, err error) {
	defer obs.Time(ctx, "devices.http.List")(&err)

	if periodDays < 1 {
		return nil, fmt.Errorf("list devices: period_days must be positive, got %d", periodDays)
	}

	endpoint := h.baseURL + "/devices/maintenance/map"

	resp, err := h.sendWithRetry(ctx, func() (*http.Request, error) {
		req, err := h.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("period_days", strconv.Itoa(periodDays))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list devices: execute request: %w", err)
	}
	defer resp.Body.Close()

	var devices []domain.Device
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		return nil, fmt.Errorf("list devices: decode response: %w", err)
	}

	for i := range devices {
		if devices[i].AirQlouds == nil {
			devices[i].AirQlouds = []string{}
		}
	}

	return devices, nil
}
