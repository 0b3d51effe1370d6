// Package json 提供高性能 JSON 序列化/反序列化功能。
// 默认使用 goccy/go-json 替代标准库 encoding/json，提升约 2-3 倍性能；
// 同时提供 sonic、jsoniter、segmentio 后端，可通过名称选择。
// 包级函数保持与标准库相同的 API，便于全项目统一替换。
package json

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// API 是快速编解码后端的统一接口
type API interface {
	// Name 返回后端名称（例如 "goccy"、"sonic"）
	Name() string

	// Marshal 将值序列化为紧凑 JSON
	Marshal(v interface{}) ([]byte, error)

	// MarshalIndent 将值序列化为带缩进的 JSON
	MarshalIndent(v interface{}, prefix, indent string) ([]byte, error)

	// Unmarshal 将 JSON 字节切片反序列化为值
	Unmarshal(data []byte, v interface{}) error

	// Valid 检查字节切片是否为有效的 JSON
	Valid(data []byte) bool
}

// Marshal 将值序列化为 JSON 字节切片
// 性能比标准库快约 2-3 倍
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// MarshalIndent 将值序列化为带缩进的 JSON 字节切片
// 用于调试日志等需要可读格式的场景
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// Unmarshal 将 JSON 字节切片反序列化为值
// 性能比标准库快约 2-3 倍
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// Valid 检查字节切片是否为有效的 JSON
func Valid(data []byte) bool {
	return gojson.Valid(data)
}

// Indent 对已编码的 JSON 重新缩进，结果追加到 dst
func Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return gojson.Indent(dst, src, prefix, indent)
}

// RawMessage 是原始编码的 JSON 值
// 实现 Marshaler 和 Unmarshaler 接口
type RawMessage = gojson.RawMessage

// Marshaler 由能自行序列化为 JSON 的类型实现
type Marshaler = gojson.Marshaler

// UnsupportedTypeError 在遇到无法序列化的类型（chan、func、complex）时返回
type UnsupportedTypeError = gojson.UnsupportedTypeError
