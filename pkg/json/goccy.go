package json

import (
	gojson "github.com/goccy/go-json"
)

// goccyAPI 使用 goccy/go-json，与 fiber 默认编解码器一致
type goccyAPI struct{}

var _ API = goccyAPI{}

func (goccyAPI) Name() string {
	return BackendGoccy
}

func (goccyAPI) Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

func (goccyAPI) MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

func (goccyAPI) Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

func (goccyAPI) Valid(data []byte) bool {
	return gojson.Valid(data)
}
