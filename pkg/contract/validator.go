/*
 * @Description: 所有 schema 共用的校验引擎
 * @Author: 安知鱼
 * @Date: 2026-09-04 09:20:03
 * @LastEditTime: 2026-09-18 21:32:51
 * @LastEditors: 安知鱼
 */
package contract

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
	"github.com/anzhiyu-c/imalink-schemas/pkg/types"
)

// validate 是进程内唯一的校验器实例，注册只发生在 init 阶段，之后可并发使用
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// 错误中的字段名使用 JSON 名称，与线上格式保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return jsonName(fld)
	})

	_ = v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && constant.VisibilityLevel(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && constant.CategoryType(fl.Field().String()).IsValid()
	})

	registerOptional[int](v)
	registerOptional[int64](v)
	registerOptional[float64](v)
	registerOptional[bool](v)
	registerOptional[string](v)
	registerOptional[constant.VisibilityLevel](v)
	registerOptional[constant.CategoryType](v)
	return v
}

// registerOptional 让校验器透过 Optional 读取真实值，未提供或为 null 时视为空值
func registerOptional[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(types.Optional[T]); ok {
			return o.Raw()
		}
		return nil
	}, types.Optional[T]{})
}

// RegisterOptional 为额外的 Optional 实例类型注册取值函数，需在 init 阶段调用
func RegisterOptional[T any]() {
	registerOptional[T](validate)
}

// RegisterStructValidation 注册跨字段的结构体级校验，需在 init 阶段调用
func RegisterStructValidation(fn validator.StructLevelFunc, schemas ...any) {
	validate.RegisterStructValidation(fn, schemas...)
}

// Engine 返回底层校验器，供 gin 等框架复用
func Engine() *validator.Validate {
	return validate
}

// Validate 完整校验一个结构体（或结构体指针），返回所有失败的字段
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fromValidator(schemaName(v), err)
	}
	return nil
}

// jsonName 返回字段的 JSON 名称，没有 json 标签时使用 Go 字段名
func jsonName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return fld.Name
	}
	return name
}

// schemaName 返回用于错误信息的 schema 名称，泛型类型去掉类型参数部分
func schemaName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return t.String()
	}
	return name
}
