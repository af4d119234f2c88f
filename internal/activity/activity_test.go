package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCallsign(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain",
			input:    "S-07 Alex",
			expected: "S-07",
		},
		{
			name:     "Bracketed",
			input:    "[S-7] Alex",
			expected: "S-07",
		},
		{
			name:     "Lowercase",
			input:    "alex s-12",
			expected: "S-12",
		},
		{
			name:     "No callsign",
			input:    "Alex",
			expected: "",
		},
		{
			name:     "Zero is out of range",
			input:    "S-00 Alex",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCallsign(tt.input))
		})
	}
}

func TestSendCallsigns(t *testing.T) {
	var got struct {
		Token     string   `json:"token"`
		Sheet     string   `json:"sheet"`
		Callsigns []string `json:"callsigns"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "")
	ok, err := client.SendCallsigns([]string{"S-12", "S-07"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", got.Token)
	assert.Equal(t, "RAZII", got.Sheet)
	assert.Equal(t, []string{"S-07", "S-12"}, got.Callsigns, "callsigns are sorted")
}

func TestSendCallsignsRejectsBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("NOPE"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "")
	ok, err := client.SendCallsigns([]string{"S-07"})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSendCallsignsDisabled(t *testing.T) {
	client := NewClient("", "", "")
	ok, err := client.SendCallsigns([]string{"S-07"})
	assert.NoError(t, err)
	assert.False(t, ok)
}
