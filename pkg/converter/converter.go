// Package converter 实现快速编解码器的回退转换。
//
// 快速编解码器只直接处理基本类型、map[string]any、[]any 以及自身能反射编码的类型。
// 其余值（十进制数、UUID、延迟字符串、可迭代对象、类字典/类列表包装）在编码前
// 由 Converter.Default 转换为编解码器能理解的基本类型；Walk 负责在整个值树上应用回退函数。
package converter

import (
	"encoding"
	"fmt"
	"iter"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
)

// Options 控制回退转换的行为
type Options struct {
	// CoerceDecimalToString 为 true 时十进制数序列化为字符串，否则为浮点数
	CoerceDecimalToString bool
}

// Converter 持有回退转换配置，构造后不可变，可并发使用
type Converter struct {
	opts Options
}

// New 创建转换器
func New(opts Options) *Converter {
	return &Converter{opts: opts}
}

// CoerceDecimalToString 返回十进制数转换模式
func (c *Converter) CoerceDecimalToString() bool {
	return c.opts.CoerceDecimalToString
}

// Default 将编解码器无法直接表示的值转换为可表示的形式。
//
// 判定顺序：
//   - 十进制数（decimal.Decimal、*big.Float）按配置转为字符串或 float64
//   - uuid.UUID、LazyString、ErrorDetail 转为字符串，[]byte 转为字符串
//   - Mapper 转为 map[string]any，Lister 转为 []any
//   - iter.Seq[any] 与 Iterable 被完整迭代为 []any
//   - json.Marshaler 原样交给编解码器，encoding.TextMarshaler 转为文本
//   - Go map 转为 map[string]any，切片/数组转为 []any，非空指针解引用
//
// 不匹配任何规则的值原样返回，由调用方决定成功或失败。
func (c *Converter) Default(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return c.decimal(t), nil
	case decimal.NullDecimal:
		if !t.Valid {
			return nil, nil
		}
		return c.decimal(t.Decimal), nil
	case *big.Float:
		if t == nil {
			return nil, nil
		}
		if c.opts.CoerceDecimalToString {
			return t.Text('f', -1), nil
		}
		f, _ := t.Float64()
		return f, nil
	case uuid.UUID:
		return t.String(), nil
	case uuid.NullUUID:
		if !t.Valid {
			return nil, nil
		}
		return t.UUID.String(), nil
	case LazyString:
		if t == nil {
			return nil, nil
		}
		return t(), nil
	case ErrorDetail:
		return t.Message, nil
	case []byte:
		return string(t), nil
	case Mapper:
		return t.AsMap(), nil
	case Lister:
		return t.ToList(), nil
	case iter.Seq[any]:
		return drain(t), nil
	case func(func(any) bool):
		return drain(t), nil
	case Iterable:
		return drain(t.All()), nil
	case json.Marshaler:
		return v, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return rv.Elem().Interface(), nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		return mapOf(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		return listOf(rv), nil
	case reflect.Array:
		return listOf(rv), nil
	}
	return v, nil
}

// decimal 按配置转换十进制数
// 字符串形式保留原始小数位数，例如 1.0 输出 "1.0"；正指数写成普通整数，1E+2 输出 "100"
func (c *Converter) decimal(d decimal.Decimal) any {
	if c.opts.CoerceDecimalToString {
		if exp := d.Exponent(); exp < 0 {
			return d.StringFixed(-exp)
		}
		return d.String()
	}
	f, _ := d.Float64()
	return f
}

// Legacy 返回兼容编码器使用的回退函数，等价于 DateTime(c.Default, precise)
func (c *Converter) Legacy(precise bool) DefaultFunc {
	return DateTime(c.Default, precise)
}

// DateTime 在 hook 之前加上框架约定的日期/时间格式化，其余值交给 hook。
// precise 为 false 时日期时间的亚秒部分截断到毫秒。
// hook 为 nil 时返回 nil，保持"禁止转换"的语义。
func DateTime(hook DefaultFunc, precise bool) DefaultFunc {
	if hook == nil {
		return nil
	}
	return func(v any) (any, error) {
		switch t := v.(type) {
		case time.Time:
			return FormatDateTime(t, precise), nil
		case time.Duration:
			return FormatDuration(t), nil
		}
		return hook(v)
	}
}

func drain(seq iter.Seq[any]) []any {
	out := make([]any, 0)
	if seq == nil {
		return out
	}
	for item := range seq {
		out = append(out, item)
	}
	return out
}

func listOf(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func mapOf(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		key, err := mapKey(it.Key())
		if err != nil {
			return nil, err
		}
		out[key] = it.Value().Interface()
	}
	return out, nil
}

// mapKey 按 encoding/json 的规则把 map 键转为字符串
func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", nil
		}
		text, err := tm.MarshalText()
		return string(text), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported map key type %s", k.Type())
}
