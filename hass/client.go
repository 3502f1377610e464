// Package hass is a minimal Home Assistant REST API client.
package hass

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Home Assistant instance. The zero HTTP client is
// replaced with one carrying a sane timeout on first use.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
	}
}

func (c *Client) ensureHTTP() {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 6 * time.Second}
	}
}

type state struct {
	EntityID   string                     `json:"entity_id"`
	State      string                     `json:"state"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// Entity looks up one field of an entity's state object. The field
// "state" returns the state value itself; any other field is resolved
// against the entity attributes.
func (c *Client) Entity(entity, field string) (string, error) {
	c.ensureHTTP()

	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", fmt.Errorf("hass: base url empty")
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/states/"+entity, nil)
	if err != nil {
		return "", err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("hass: entity %q status=%s", entity, resp.Status)
	}

	var s state
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return "", fmt.Errorf("hass: entity %q: %w", entity, err)
	}

	if field == "state" {
		return s.State, nil
	}
	raw, ok := s.Attributes[field]
	if !ok {
		return "", fmt.Errorf("hass: entity %q has no attribute %q", entity, field)
	}
	return scalar(raw), nil
}

// scalar renders a raw JSON attribute value as a plain string.
func scalar(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "on"
		}
		return "off"
	default:
		return string(raw)
	}
}
