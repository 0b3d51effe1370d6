package json

import (
	jsoniter "github.com/json-iterator/go"
)

// iterAPI 包装冻结后的 jsoniter 配置
type iterAPI struct {
	api jsoniter.API
}

var _ API = (*iterAPI)(nil)

func newIterAPI() *iterAPI {
	return &iterAPI{
		api: jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		}.Froze(),
	}
}

func (j *iterAPI) Name() string {
	return BackendJSONIter
}

func (j *iterAPI) Marshal(v interface{}) ([]byte, error) {
	return j.api.Marshal(v)
}

func (j *iterAPI) MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return j.api.MarshalIndent(v, prefix, indent)
}

func (j *iterAPI) Unmarshal(data []byte, v interface{}) error {
	return j.api.Unmarshal(data, v)
}

func (j *iterAPI) Valid(data []byte) bool {
	return j.api.Valid(data)
}
