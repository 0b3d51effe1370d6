package converter

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
)

type fieldValue struct {
	name  string
	value any
}

// structFields 按 encoding/json 的标签规则列出结构体字段：
// 跳过未导出字段与 "-"，支持 omitempty、omitzero、string 选项，提升匿名嵌入结构体的字段。
// 外层字段优先于嵌入字段；同层重名时先声明者优先。
// 存在无法读取的字段（例如未导出嵌入结构体中的字段）时返回 false。
func structFields(rv reflect.Value) ([]fieldValue, bool) {
	return collectFields(rv, make(map[string]bool))
}

func collectFields(rv reflect.Value, seen map[string]bool) ([]fieldValue, bool) {
	rt := rv.Type()
	var out []fieldValue
	var embedded []reflect.Value

	for i := range rt.NumField() {
		sf := rt.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if sf.Anonymous && name == "" {
			t := sf.Type
			if t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			if t.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				embedded = append(embedded, fv)
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}
		if !fv.CanInterface() {
			return nil, false
		}
		if name == "" {
			name = sf.Name
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		if hasOption(opts, "omitzero") && fv.IsZero() {
			continue
		}

		value := fv.Interface()
		if hasOption(opts, "string") {
			value = quoted(fv)
		}
		out = append(out, fieldValue{name: name, value: value})
	}

	for _, ev := range embedded {
		inner, ok := collectFields(ev, seen)
		if !ok {
			return nil, false
		}
		out = append(out, inner...)
	}
	return out, true
}

func hasOption(opts, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// quoted 实现 ",string" 选项：标量值编码为字符串
func quoted(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.String:
		if b, err := json.Marshal(v.String()); err == nil {
			return string(b)
		}
	}
	return v.Interface()
}
