package json

import (
	"github.com/bytedance/sonic"
)

// sonicAPI 包装冻结后的 sonic 配置
type sonicAPI struct {
	api sonic.API
}

var _ API = (*sonicAPI)(nil)

// newSonicAPI 创建 sonic 后端
// 排序 map 键以保证输出稳定，并校验字符串中的非法 UTF-8
func newSonicAPI() *sonicAPI {
	return &sonicAPI{
		api: sonic.Config{
			EscapeHTML:       true,
			SortMapKeys:      true,
			CompactMarshaler: true,
			CopyString:       true,
			ValidateString:   true,
		}.Froze(),
	}
}

func (s *sonicAPI) Name() string {
	return BackendSonic
}

func (s *sonicAPI) Marshal(v interface{}) ([]byte, error) {
	return s.api.Marshal(v)
}

func (s *sonicAPI) MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return s.api.MarshalIndent(v, prefix, indent)
}

func (s *sonicAPI) Unmarshal(data []byte, v interface{}) error {
	return s.api.Unmarshal(data, v)
}

func (s *sonicAPI) Valid(data []byte) bool {
	return s.api.Valid(data)
}
