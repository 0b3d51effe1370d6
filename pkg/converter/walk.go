package converter

import (
	"encoding"
	"errors"
	"reflect"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
)

// ErrDefaultDepth 在值树嵌套或回退函数嵌套调用超过上限时返回
var ErrDefaultDepth = errors.New("default serializer exceeds recursion limit")

var (
	marshalerType     = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Walk 在值树上应用回退函数，行为与编解码器内置回退钩子一致：
// 基本类型与 map[string]any、[]any 直接递归，其余值交给 hook，
// 并继续遍历 hook 的返回值。返回值与输入动态类型相同时停止；
// 若该值是结构体，则按 json 标签遍历其导出字段，只要有字段被转换，
// 结构体就整体展开为 map[string]any（键按编解码器规则排序），否则原样交给编解码器。
//
// 容器嵌套与 hook 调用共同计入深度，超过 254 层返回 ErrDefaultDepth。
// hook 为 nil 表示不做任何转换，值树原样返回。
func Walk(v any, hook DefaultFunc) (any, error) {
	if hook == nil {
		return v, nil
	}
	out, _, err := walk(v, hook, 0)
	return out, err
}

// walk 返回转换后的值，以及子树中是否有值被 hook 转换为其他类型。
// 纯结构性的转换（解引用指针、具名切片/映射转为 []any、map[string]any）不计入。
func walk(v any, hook DefaultFunc, depth int) (any, bool, error) {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, false, nil
	}

	if depth >= constants.MaxDefaultDepth {
		return nil, false, ErrDefaultDepth
	}

	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t, false, nil
		}
		out := make(map[string]any, len(t))
		changed := false
		for k, item := range t {
			converted, ch, err := walk(item, hook, depth+1)
			if err != nil {
				return nil, false, err
			}
			out[k] = converted
			changed = changed || ch
		}
		return out, changed, nil
	case []any:
		if t == nil {
			return t, false, nil
		}
		out := make([]any, len(t))
		changed := false
		for i, item := range t {
			converted, ch, err := walk(item, hook, depth+1)
			if err != nil {
				return nil, false, err
			}
			out[i] = converted
			changed = changed || ch
		}
		return out, changed, nil
	}

	converted, err := hook(v)
	if err != nil {
		return nil, false, err
	}
	if reflect.TypeOf(converted) != reflect.TypeOf(v) {
		out, changed, err := walk(converted, hook, depth+1)
		if err != nil {
			return nil, false, err
		}
		return out, changed || !structural(v, converted), nil
	}
	return walkStruct(converted, hook, depth)
}

// structural 判断 v 到 converted 的转换是否只改变了容器形态
func structural(v, converted any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return converted == nil || reflect.TypeOf(converted) == rv.Type().Elem()
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return false
		}
		_, ok := converted.([]any)
		return ok
	case reflect.Map:
		_, ok := converted.(map[string]any)
		return ok || converted == nil
	}
	return false
}

func walkStruct(v any, hook DefaultFunc, depth int) (any, bool, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct ||
		rv.Type().Implements(marshalerType) || rv.Type().Implements(textMarshalerType) {
		return v, false, nil
	}

	fields, ok := structFields(rv)
	if !ok {
		return v, false, nil
	}

	out := make(map[string]any, len(fields))
	changed := false
	for _, f := range fields {
		converted, ch, err := walk(f.value, hook, depth+1)
		if err != nil {
			return nil, false, err
		}
		out[f.name] = converted
		changed = changed || ch
	}
	if !changed {
		return v, false, nil
	}
	return out, true, nil
}
