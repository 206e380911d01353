/*
 * @Description: 构造后的字段赋值，赋值即校验
 * @Author: 安知鱼
 * @Date: 2026-09-05 16:37:09
 * @LastEditTime: 2026-09-19 11:02:38
 * @LastEditors: 安知鱼
 */
package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

// Assign 在构造之后为单个字段赋值，并立即重新执行该字段的校验规则。
// 标记了 contract:"immutable" 的字段一旦有值便不能再修改。
//
// field 可以是 JSON 名称（如 "rating"）或 Go 字段名（如 "Rating"）。
// 赋值先在副本上完成并校验，只有该字段（含嵌套元素）校验通过才写回 target，违反约束的写入不会破坏原有状态。
// value 为 nil 时清空指针、map、切片字段，Optional 字段被置为显式 null。
func Assign(target any, field string, value any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("赋值目标必须是非空的结构体指针，实际为 %T", target)
	}
	elem := rv.Elem()
	schema := schemaName(target)

	sf, ok := lookupField(elem.Type(), field)
	if !ok {
		return fmt.Errorf("%w: %s.%s", constant.ErrUnknownField, schema, field)
	}
	if sf.Tag.Get("contract") == "immutable" && !elem.FieldByIndex(sf.Index).IsZero() {
		return &ValidationError{Schema: schema, Fields: []FieldError{{
			Field:   jsonName(sf),
			Rule:    "immutable",
			Message: "赋值后不可修改",
		}}}
	}

	cp := reflect.New(elem.Type())
	cp.Elem().Set(elem)
	fv := cp.Elem().FieldByIndex(sf.Index)

	if value == nil {
		if err := assignNil(fv, schema, jsonName(sf)); err != nil {
			return err
		}
	} else {
		// 先清零，避免切片或 map 与旧值合并
		fv.Set(reflect.Zero(fv.Type()))
		dec, err := newDecoder(fv.Addr().Interface())
		if err != nil {
			return err
		}
		if err := dec.Decode(value); err != nil {
			return &ValidationError{Schema: schema, Fields: []FieldError{{
				Field:   jsonName(sf),
				Rule:    "type",
				Param:   fv.Type().String(),
				Value:   printableValue(value),
				Message: fmt.Sprintf("类型不匹配: 无法将 %T 赋值给 %s", value, fv.Type()),
			}}}
		}
	}

	if err := validate.Struct(cp.Interface()); err != nil {
		if err := fieldOnly(err, elem.Type().Name()+"."+sf.Name); err != nil {
			return fromValidator(schema, err)
		}
	}
	elem.Set(cp.Elem())
	return nil
}

func assignNil(fv reflect.Value, schema, name string) error {
	if setter, ok := fv.Addr().Interface().(nullSetter); ok {
		setter.SetNull()
		return nil
	}
	switch fv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	default:
		return &ValidationError{Schema: schema, Fields: []FieldError{{
			Field:   name,
			Rule:    "notnull",
			Message: "不能为 null",
		}}}
	}
}

// lookupField 先按 Go 字段名和 JSON 名称精确匹配，再做宽松匹配
func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	var loose reflect.StructField
	found := false
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		jn := jsonName(f)
		if jn == "-" {
			continue
		}
		if f.Name == name || jn == name {
			return f, true
		}
		if !found && matchName(name, jn) {
			loose, found = f, true
		}
	}
	return loose, found
}

// fieldOnly 只保留结构体命名空间位于 prefix 之下的错误，其余字段不影响本次赋值
func fieldOnly(err error, prefix string) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	var kept validator.ValidationErrors
	for _, fe := range ves {
		ns := fe.StructNamespace()
		if ns == prefix || strings.HasPrefix(ns, prefix+".") || strings.HasPrefix(ns, prefix+"[") {
			kept = append(kept, fe)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
