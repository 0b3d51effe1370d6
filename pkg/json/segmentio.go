package json

import (
	segjson "github.com/segmentio/encoding/json"
)

// segmentioAPI 使用 segmentio/encoding/json
type segmentioAPI struct{}

var _ API = segmentioAPI{}

func (segmentioAPI) Name() string {
	return BackendSegmentio
}

func (segmentioAPI) Marshal(v interface{}) ([]byte, error) {
	return segjson.Marshal(v)
}

func (segmentioAPI) MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return segjson.MarshalIndent(v, prefix, indent)
}

func (segmentioAPI) Unmarshal(data []byte, v interface{}) error {
	return segjson.Unmarshal(data, v)
}

func (segmentioAPI) Valid(data []byte) bool {
	return segjson.Valid(data)
}
