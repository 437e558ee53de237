package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedListShape = errors.New("apiclient: list response is neither an array nor a results envelope")

// DecodeList decodes a collection response. Upstream list endpoints either
// return a bare array or wrap it as {"results": [...], "count": n}.
func DecodeList(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.Unmarshal([]byte("[]"), out)
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("apiclient: decode list: %w", err)
		}
		return nil
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("apiclient: decode list envelope: %w", err)
	}
	if envelope.Results == nil {
		return ErrUnexpectedListShape
	}
	if bytes.Equal(bytes.TrimSpace(envelope.Results), []byte("null")) {
		return json.Unmarshal([]byte("[]"), out)
	}
	if err := json.Unmarshal(envelope.Results, out); err != nil {
		return fmt.Errorf("apiclient: decode list results: %w", err)
	}
	return nil
}
