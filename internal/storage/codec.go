package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/duetoday/internal/model"
	"gopkg.in/yaml.v3"
)

var ErrMalformed = errors.New("storage: malformed state")

// flatten merges completions and anchors into the single key space of the
// persisted layout: task key -> "YYYY-MM-DD", anchor key -> week number.
func flatten(st model.State) (map[string]any, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(st.Completions)+len(st.Anchors))
	for k, d := range st.Completions {
		out[k] = d.String()
	}
	for k, w := range st.Anchors {
		out[k] = w
	}
	return out, nil
}

// EncodeJSON renders st in the on-disk JSON layout.
func EncodeJSON(st model.State) ([]byte, error) {
	flat, err := flatten(st)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(flat); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses the on-disk JSON layout. Any key that is not a rotation
// anchor must hold a date string.
func DecodeJSON(raw []byte) (model.State, error) {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if flat == nil {
		return model.State{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	st := model.NewState()
	for k, v := range flat {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return model.State{}, fmt.Errorf("%w: %q is null", ErrMalformed, k)
		}
		if model.IsAnchorKey(k) {
			var week int
			if err := json.Unmarshal(v, &week); err != nil {
				return model.State{}, fmt.Errorf("%w: anchor %q: %v", ErrMalformed, k, err)
			}
			st.Anchors[k] = week
			continue
		}
		var text string
		if err := json.Unmarshal(v, &text); err != nil {
			return model.State{}, fmt.Errorf("%w: %q: %v", ErrMalformed, k, err)
		}
		d, err := model.ParseDate(text)
		if err != nil {
			return model.State{}, fmt.Errorf("%w: %q: %v", ErrMalformed, k, err)
		}
		st.Completions[k] = d
	}
	return st, nil
}

// EncodeYAML renders st with the same flat layout as YAML.
func EncodeYAML(st model.State) ([]byte, error) {
	flat, err := flatten(st)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(flat)
}
