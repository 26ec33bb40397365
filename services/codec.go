package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"trip-planner/models"
)

// Export renders state as 2-space indented JSON.
func Export(state models.AppState) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Import parses and validates exported JSON. On any failure it reports false
// so the caller keeps its current state.
func Import(text string) (models.AppState, bool) {
	state, err := ImportErr(text)
	return state, err == nil
}

// ImportErr is Import with the rejection reason; failures wrap ErrValidation.
func ImportErr(text string) (models.AppState, error) {
	if err := checkShape([]byte(text)); err != nil {
		return models.AppState{}, err
	}
	var state models.AppState
	if err := json.Unmarshal([]byte(text), &state); err != nil {
		return models.AppState{}, invalid("malformed state: %v", err)
	}
	if err := Validate(state); err != nil {
		return models.AppState{}, err
	}
	return state, nil
}

// checkShape is the structural check done before typed decoding: a catalog
// list, a plans object holding every plan key, and a meta object.
func checkShape(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return invalid("not a JSON object: %v", err)
	}
	if !isJSONKind(raw["placeBank"], '[') {
		return invalid("placeBank must be a list")
	}
	if !isJSONKind(raw["meta"], '{') {
		return invalid("meta must be an object")
	}
	if !isJSONKind(raw["plans"], '{') {
		return invalid("plans must be an object")
	}
	var plans map[string]json.RawMessage
	if err := json.Unmarshal(raw["plans"], &plans); err != nil {
		return invalid("plans must be an object: %v", err)
	}
	for _, key := range models.PlanKeys {
		if !isJSONKind(plans[string(key)], '{') {
			return invalid("plan %q is missing", key)
		}
	}
	return nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}

// Validate applies the strict schema every externally sourced state must satisfy.
func Validate(state models.AppState) error {
	seen := make(map[string]bool, len(state.PlaceBank))
	for i, place := range state.PlaceBank {
		if err := ValidatePlace(place); err != nil {
			return fmt.Errorf("placeBank[%d]: %w", i, err)
		}
		if seen[place.ID] {
			return invalid("placeBank[%d]: duplicate place id %q", i, place.ID)
		}
		seen[place.ID] = true
	}

	if len(state.Plans) != len(models.PlanKeys) {
		return invalid("expected plans %v, got %d plans", models.PlanKeys, len(state.Plans))
	}
	for _, key := range models.PlanKeys {
		plan, ok := state.Plans[key]
		if !ok {
			return invalid("plan %q is missing", key)
		}
		if plan.Key != key {
			return invalid("plan %q has key %q", key, plan.Key)
		}
		for i, day := range plan.Days {
			if _, err := time.Parse(dateLayout, day.Date); err != nil {
				return invalid("plan %s day %d: date %q is not YYYY-MM-DD", key, i, day.Date)
			}
			for _, id := range day.Items {
				if id == "" {
					return invalid("plan %s day %d: empty place id", key, i)
				}
			}
		}
		for _, id := range plan.Unscheduled {
			if id == "" {
				return invalid("plan %s: empty place id", key)
			}
		}
	}
	return nil
}

// ValidatePlace checks a single catalog record.
func ValidatePlace(place models.Place) error {
	switch {
	case strings.TrimSpace(place.ID) == "":
		return invalid("place id is empty")
	case strings.TrimSpace(place.Name) == "":
		return invalid("place %q has no name", place.ID)
	case !place.WalkLoad.Valid():
		return invalid("place %q has unknown walkLoad %q", place.ID, place.WalkLoad)
	case place.EstMin != nil && *place.EstMin < 0:
		return invalid("place %q has negative estMin", place.ID)
	case place.Rating != nil && (*place.Rating < 0 || *place.Rating > 5):
		return invalid("place %q has rating outside 0-5", place.ID)
	}
	return nil
}

// EncodeShareLink serializes state into a URL fragment: JSON, then
// percent-encoding, then base64.
func EncodeShareLink(state models.AppState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCodec, err)
	}
	return base64.StdEncoding.EncodeToString([]byte(encodeURIComponent(string(data)))), nil
}

// DecodeShareLink reverses EncodeShareLink, reporting false on any failure.
func DecodeShareLink(fragment string) (models.AppState, bool) {
	state, err := DecodeShareLinkErr(fragment)
	return state, err == nil
}

// DecodeShareLinkErr is DecodeShareLink with the failing stage; errors wrap ErrCodec.
func DecodeShareLinkErr(fragment string) (models.AppState, error) {
	fragment = strings.TrimSpace(strings.TrimPrefix(fragment, "#"))
	if fragment == "" {
		return models.AppState{}, fmt.Errorf("%w: empty fragment", ErrCodec)
	}
	encoding := base64.StdEncoding
	if len(fragment)%4 != 0 {
		encoding = base64.RawStdEncoding
	}
	escaped, err := encoding.DecodeString(fragment)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: base64: %v", ErrCodec, err)
	}
	text, err := url.PathUnescape(string(escaped))
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: percent-decoding: %v", ErrCodec, err)
	}
	state, err := ImportErr(text)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: %w", ErrCodec, err)
	}
	return state, nil
}

// encodeURIComponent escapes every byte outside the browser's unreserved set
// so links stay compatible with the web client.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
