package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// The backend wraps list payloads inconsistently: sometimes a bare array,
// sometimes {data: [...]}, sometimes {data: {data: [...]}}, and crime reports
// under {crimes: [...]} or {data: {reports: [...]}}. All of that uncertainty
// is absorbed here, once, instead of probing at every call site.

var errNoList = errors.New("response contains no list payload")

// extractList digs the first array out of a wrapped payload. Wrapper keys are
// checked in the order the backend has been observed to use them.
func extractList(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		return raw, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "crimes", "reports"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if list, err := extractList(inner); err == nil {
			return list, nil
		}
	}
	return nil, errNoList
}

// decodeList unmarshals a possibly wrapped array into out (a pointer to a
// slice). An empty or absent list decodes to an empty slice, not an error.
func decodeList(raw json.RawMessage, out any) error {
	list, err := extractList(raw)
	if err != nil {
		if errors.Is(err, errNoList) {
			return nil
		}
		return err
	}
	return json.Unmarshal(list, out)
}

// decodeObject unmarshals a possibly wrapped object into out, unwrapping a
// "data" envelope when one is present.
func decodeObject(raw json.RawMessage, out any) error {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	if inner, ok := wrapper["data"]; ok && strings.HasPrefix(strings.TrimSpace(string(inner)), "{") {
		return json.Unmarshal(inner, out)
	}
	return json.Unmarshal(raw, out)
}

// locationEntry tolerates the two count spellings and either numeric or
// string-encoded counts.
type locationEntry struct {
	Name       string          `json:"name"`
	CrimeCount json.RawMessage `json:"crimeCount"`
	Count      json.RawMessage `json:"count"`
}

func (e *locationEntry) count() int {
	for _, raw := range []json.RawMessage{e.CrimeCount, e.Count} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n
			}
		}
	}
	return 0
}
