// Package errors 提供结构化的错误类型。
// 解析失败与编码失败各有独立类型，原样向调用方传播，本层不做重试或本地恢复。
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType 定义错误类型常量
type ErrorType string

const (
	ErrorTypeParse                ErrorType = "parse_error"
	ErrorTypeEncode               ErrorType = "encode_error"
	ErrorTypeUnsupportedMediaType ErrorType = "unsupported_media_type"
)

// FastJSONError 是渲染器和解析器的统一错误类型
type FastJSONError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"detail"`
	StatusCode int       `json:"-"` // HTTP 状态码，不序列化到 JSON
	Cause      error     `json:"-"` // 底层编解码库的原始错误
	MediaType  string    `json:"-"` // 请求或响应的媒体类型（用于日志）
}

// Error 实现 error 接口
func (e *FastJSONError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *FastJSONError) Unwrap() error {
	return e.Cause
}

// ToResponse 转换为 HTTP 错误响应体
func (e *FastJSONError) ToResponse() map[string]interface{} {
	return map[string]interface{}{
		"type":   string(e.Type),
		"detail": e.Message,
	}
}

// WithCause 添加原始错误
func (e *FastJSONError) WithCause(cause error) *FastJSONError {
	e.Cause = cause
	return e
}

// WithMediaType 添加媒体类型信息
func (e *FastJSONError) WithMediaType(mediaType string) *FastJSONError {
	e.MediaType = mediaType
	return e
}

// NewParseError 创建解析错误
// 消息格式为 "JSON parse error - <诊断信息>"
func NewParseError(cause error) *FastJSONError {
	msg := "JSON parse error"
	if cause != nil {
		msg = fmt.Sprintf("JSON parse error - %v", cause)
	}
	return &FastJSONError{
		Type:       ErrorTypeParse,
		Message:    msg,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewEncodeError 创建编码错误
func NewEncodeError(cause error) *FastJSONError {
	msg := "JSON encode error"
	if cause != nil {
		msg = fmt.Sprintf("JSON encode error - %v", cause)
	}
	return &FastJSONError{
		Type:       ErrorTypeEncode,
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewUnsupportedMediaTypeError 创建不支持的媒体类型错误
func NewUnsupportedMediaTypeError(mediaType string) *FastJSONError {
	return &FastJSONError{
		Type:       ErrorTypeUnsupportedMediaType,
		Message:    fmt.Sprintf("Unsupported media type %q in request.", mediaType),
		StatusCode: http.StatusUnsupportedMediaType,
		MediaType:  mediaType,
	}
}

// As 从错误链中提取 FastJSONError
func As(err error) (*FastJSONError, bool) {
	var fe *FastJSONError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsParseError 判断错误链中是否包含解析错误
func IsParseError(err error) bool {
	fe, ok := As(err)
	return ok && fe.Type == ErrorTypeParse
}

// IsEncodeError 判断错误链中是否包含编码错误
func IsEncodeError(err error) bool {
	fe, ok := As(err)
	return ok && fe.Type == ErrorTypeEncode
}
