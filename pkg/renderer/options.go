package renderer

import (
	"github.com/CyrilPeng/fiber-fastjson/pkg/converter"
)

// Option 为单次 Render 调用调整行为
type Option func(*renderOptions)

type renderOptions struct {
	defaultFn  converter.DefaultFunc
	defaultSet bool
	indent     int
	indentSet  bool
	legacy     LegacyEncoder
}

// WithDefault 为本次调用替换回退函数。
// 传入 nil 表示禁止转换：无法直接序列化的值会导致编码错误，而不是使用内置回退。
func WithDefault(fn converter.DefaultFunc) Option {
	return func(o *renderOptions) {
		o.defaultFn = fn
		o.defaultSet = true
	}
}

// WithoutDefault 等价于 WithDefault(nil)
func WithoutDefault() Option {
	return WithDefault(nil)
}

// WithIndent 为本次调用指定缩进宽度，大于 0 时走兼容路径，0 强制紧凑输出
func WithIndent(indent int) Option {
	return func(o *renderOptions) {
		o.indent = indent
		o.indentSet = true
	}
}

// WithLegacyEncoder 为本次调用替换兼容编码器
func WithLegacyEncoder(enc LegacyEncoder) Option {
	return func(o *renderOptions) {
		o.legacy = enc
	}
}
