package converter

import (
	"iter"
)

// DefaultFunc 是回退函数：编解码器遇到无法直接序列化的值时调用。
// 返回可序列化的替代值；返回错误则终止编码。
type DefaultFunc func(v any) (any, error)

// Mapper 由类字典包装类型实现
type Mapper interface {
	AsMap() map[string]any
}

// Lister 由具备"转换为序列"能力的类型实现
type Lister interface {
	ToList() []any
}

// Iterable 由只暴露迭代能力的类型实现
type Iterable interface {
	All() iter.Seq[any]
}

// LazyString 是延迟求值的字符串，序列化时才调用
type LazyString func() string

// String 求值并返回字符串
func (l LazyString) String() string {
	if l == nil {
		return ""
	}
	return l()
}

// Lazy 把 fn 包装为延迟字符串
func Lazy(fn func() string) LazyString {
	return LazyString(fn)
}

// ErrorDetail 是带错误码的错误消息，序列化为消息本身
type ErrorDetail struct {
	Message string
	Code    string
}

func (d ErrorDetail) String() string {
	return d.Message
}

// ReturnDict 是携带来源信息的字典包装
type ReturnDict struct {
	Data   map[string]any
	Source string
}

// AsMap 实现 Mapper
func (d ReturnDict) AsMap() map[string]any {
	return d.Data
}

// ReturnList 是携带来源信息的列表包装
type ReturnList struct {
	Items  []any
	Source string
}

// ToList 实现 Lister
func (l ReturnList) ToList() []any {
	return l.Items
}
