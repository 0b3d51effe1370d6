// Package renderer 把快速 JSON 编解码器接入 fiber 的响应管道。
//
// 默认走快速路径：先用回退函数转换值树，再交给快速后端序列化。
// 请求可读的缩进输出时（text/html、媒体类型中的 indent 参数或显式缩进），
// 改走兼容路径，由可配置的 LegacyEncoder 负责缩进与框架日期时间格式。
package renderer

import (
	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/converter"
	"github.com/CyrilPeng/fiber-fastjson/pkg/errors"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
	"github.com/CyrilPeng/fiber-fastjson/pkg/log"
)

// Settings 保存渲染器配置
type Settings struct {
	// Codec 快速后端名称，见 json.Names()
	Codec string

	// CoerceDecimalToString 十进制数序列化为字符串（true）或数字（false）
	CoerceDecimalToString bool

	// Indent 默认缩进宽度，大于 0 时所有响应都走兼容路径
	Indent int

	// PreciseTime 兼容路径保留微秒精度，默认截断到毫秒
	PreciseTime bool

	// Default 替换内置回退函数（为 nil 时使用 Converter.Default），快速路径与兼容路径共用
	Default converter.DefaultFunc

	// LegacyEncoder 替换默认的兼容编码器
	LegacyEncoder LegacyEncoder
}

// DefaultSettings 返回默认配置
func DefaultSettings() Settings {
	return Settings{
		Codec:                 json.BackendGoccy,
		CoerceDecimalToString: true,
	}
}

// Renderer 把值树序列化为 JSON，构造后不可变，可并发使用
type Renderer struct {
	api    json.API
	conv   *converter.Converter
	hook   converter.DefaultFunc
	legacy LegacyEncoder
	indent int
}

// New 根据配置创建渲染器
func New(settings Settings) *Renderer {
	conv := converter.New(converter.Options{
		CoerceDecimalToString: settings.CoerceDecimalToString,
	})

	r := &Renderer{
		api:    json.New(settings.Codec),
		conv:   conv,
		hook:   settings.Default,
		legacy: settings.LegacyEncoder,
		indent: settings.Indent,
	}
	if r.hook == nil {
		r.hook = conv.Default
	}
	if r.legacy == nil {
		r.legacy = NewFrameworkEncoder(settings.PreciseTime)
	}
	return r
}

// Default 返回使用默认配置的渲染器
func Default() *Renderer {
	return New(DefaultSettings())
}

// MediaType 返回渲染器产出的媒体类型
func (r *Renderer) MediaType() string {
	return constants.MIMETypeJSON
}

// Codec 返回快速后端名称
func (r *Renderer) Codec() string {
	return r.api.Name()
}

// Converter 返回渲染器使用的转换器
func (r *Renderer) Converter() *converter.Converter {
	return r.conv
}

// Render 把 data 序列化为 JSON。
//
// data 为 nil 时立即返回空结果。mediaType 为客户端接受的媒体类型，可为空；
// 其中的 text/html 或 indent 参数会触发兼容路径。
func (r *Renderer) Render(data any, mediaType string, opts ...Option) ([]byte, error) {
	if data == nil {
		return []byte{}, nil
	}

	o := r.resolve(opts)

	// 显式传入的 nil 回退函数表示禁止转换，编解码器遇到无法序列化的值时直接失败
	hook := r.hook
	if o.defaultSet {
		hook = o.defaultFn
	}

	if indent := r.indentFor(mediaType, o); indent > 0 {
		log.Codec.Debug().
			Str("media_type", mediaType).
			Int("indent", indent).
			Bool("coerce", hook != nil).
			Msg("rendering with legacy encoder")

		out, err := o.legacy.Encode(data, indent, hook)
		if err != nil {
			return nil, asEncodeError(err, mediaType)
		}
		return out, nil
	}

	normalized, err := converter.Walk(data, hook)
	if err != nil {
		return nil, asEncodeError(err, mediaType)
	}

	out, err := r.api.Marshal(normalized)
	if err != nil {
		return nil, asEncodeError(err, mediaType)
	}
	return out, nil
}

// Marshal 具有 fiber JSONEncoder 的签名，可直接用于 fiber.Config
func (r *Renderer) Marshal(v interface{}) ([]byte, error) {
	return r.Render(v, constants.MIMETypeJSON)
}

func (r *Renderer) resolve(opts []Option) *renderOptions {
	o := &renderOptions{legacy: r.legacy}
	for _, opt := range opts {
		opt(o)
	}
	if o.legacy == nil {
		o.legacy = r.legacy
	}
	return o
}

// indentFor 决定缩进宽度：显式选项优先，其次媒体类型，最后是默认配置
func (r *Renderer) indentFor(mediaType string, o *renderOptions) int {
	if o.indentSet {
		return clampIndent(o.indent)
	}
	if indent, ok := mediaTypeIndent(mediaType); ok {
		return indent
	}
	return clampIndent(r.indent)
}

func asEncodeError(err error, mediaType string) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.NewEncodeError(err).WithMediaType(mediaType)
}
