// Package activity reports member callsigns to the external
// activity-tracking API after SAS actions.
package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// callsignRe matches callsigns like "S-07" or "[S-7]" inside display names.
var callsignRe = regexp.MustCompile(`(?i)\[?S-(\d{1,2})\]?`)

// ExtractCallsign pulls a normalized "S-NN" callsign out of a display name.
// Returns empty when the name carries none or the number is out of range.
func ExtractCallsign(displayName string) string {
	m := callsignRe.FindStringSubmatch(displayName)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 99 {
		return ""
	}
	return fmt.Sprintf("S-%02d", n)
}

// Client posts callsign batches to the activity API.
type Client struct {
	url    string
	token  string
	sheet  string
	client *http.Client
}

// NewClient builds an activity API client. An empty url or token disables it.
func NewClient(url, token, sheet string) *Client {
	if sheet == "" {
		sheet = "RAZII"
	}
	return &Client{
		url:    url,
		token:  token,
		sheet:  sheet,
		client: &http.Client{Timeout: 12 * time.Second},
	}
}

// Enabled reports whether the client is configured to send anything.
func (c *Client) Enabled() bool {
	return c.url != "" && c.token != ""
}

// SendCallsigns posts the batch and reports whether the API acknowledged
// it. The API answers plain text; success is HTTP 200 with a body starting
// "OK".
func (c *Client) SendCallsigns(callsigns []string) (bool, error) {
	if !c.Enabled() || len(callsigns) == 0 {
		return false, nil
	}

	sorted := append([]string(nil), callsigns...)
	sort.Strings(sorted)

	payload, err := json.Marshal(map[string]interface{}{
		"token":     c.token,
		"sheet":     c.sheet,
		"callsigns": sorted,
	})
	if err != nil {
		return false, err
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("activity API: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "OK") {
		return false, fmt.Errorf("activity API bad response %d: %s", resp.StatusCode, string(body))
	}
	return true, nil
}
