package har

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a HAR document. A document without a "log" object wraps
// ErrMalformed, as does a null entry. Missing entries decode as an empty list.
func Decode(data []byte) (*File, error) {
	var probe struct {
		Log json.RawMessage `json:"log"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	trimmed := bytes.TrimSpace(probe.Log)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: missing log section", ErrMalformed)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if f.Log.Entries == nil {
		f.Log.Entries = []*Entry{}
	}
	for i, e := range f.Log.Entries {
		if e == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrMalformed, i)
		}
	}
	return &f, nil
}
