package stripe

import (
	"encoding/json"
	"strings"
)

// bestDiagnostic extracts the most useful text from an upstream response:
// the structured error message when present, else the raw body.
func bestDiagnostic(body []byte) string {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}
