package renderer

import (
	"bytes"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/CyrilPeng/fiber-fastjson/pkg/converter"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
)

// LegacyEncoder 是兼容路径使用的编码器，支持缩进。
// hook 是本次调用解析出的回退函数，为 nil 表示禁止转换。
type LegacyEncoder interface {
	Encode(v any, indent int, hook converter.DefaultFunc) ([]byte, error)
}

// LegacyEncoderFunc 让普通函数实现 LegacyEncoder
type LegacyEncoderFunc func(v any, indent int, hook converter.DefaultFunc) ([]byte, error)

// Encode 实现 LegacyEncoder
func (f LegacyEncoderFunc) Encode(v any, indent int, hook converter.DefaultFunc) ([]byte, error) {
	return f(v, indent, hook)
}

// FrameworkEncoder 是默认的兼容编码器：
// 使用与标准库兼容的 jsoniter 配置，在回退函数之前按框架约定格式化日期时间，然后缩进输出。
type FrameworkEncoder struct {
	precise bool
	api     jsoniter.API
}

var _ LegacyEncoder = (*FrameworkEncoder)(nil)

// NewFrameworkEncoder 创建兼容编码器
// precise 为 false 时日期时间的亚秒部分截断到毫秒
func NewFrameworkEncoder(precise bool) *FrameworkEncoder {
	return &FrameworkEncoder{
		precise: precise,
		api:     jsoniter.ConfigCompatibleWithStandardLibrary,
	}
}

// Encode 序列化 v，indent 大于 0 时按该宽度（空格）缩进。
// hook 为 nil 时不遍历值树，无法序列化的值直接导致编码错误。
func (e *FrameworkEncoder) Encode(v any, indent int, hook converter.DefaultFunc) ([]byte, error) {
	normalized, err := converter.Walk(v, converter.DateTime(hook, e.precise))
	if err != nil {
		return nil, err
	}

	compact, err := e.api.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		return compact, nil
	}

	// jsoniter 在排序键的 map 内部不会保留缩进层级，先紧凑编码再统一缩进
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
