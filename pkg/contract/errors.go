/*
 * @Description: 结构化的校验与序列化错误
 * @Author: 安知鱼
 * @Date: 2026-09-04 09:41:17
 * @LastEditTime: 2026-09-18 22:10:46
 * @LastEditors: 安知鱼
 */
package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

// FieldError 描述单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`           // JSON 路径，如 image_file_list[0].filename
	Rule    string `json:"rule"`            // 失败的规则，如 required、max、type
	Param   string `json:"param,omitempty"` // 规则参数，如 max=5 中的 5
	Value   any    `json:"value,omitempty"` // 实际的值
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError 汇总了一次校验中所有失败的字段，而不仅仅是第一个
type ValidationError struct {
	Schema string       `json:"schema"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s %s: %s", e.Schema, constant.ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return constant.ErrValidation
}

// merge 追加 other 中的字段错误，跳过已被本错误覆盖的字段及其子路径
func (e *ValidationError) merge(other *ValidationError) {
	for _, f := range other.Fields {
		if !e.covers(f.Field) {
			e.Fields = append(e.Fields, f)
		}
	}
}

func (e *ValidationError) covers(path string) bool {
	for _, f := range e.Fields {
		if f.Field == "" {
			continue
		}
		if path == f.Field || strings.HasPrefix(path, f.Field+".") || strings.HasPrefix(path, f.Field+"[") {
			return true
		}
	}
	return false
}

// Field 按 JSON 路径查找字段错误
func (e *ValidationError) Field(path string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == path {
			return f, true
		}
	}
	return FieldError{}, false
}

// Has 判断指定字段是否违反了指定规则，rule 为空时只判断字段
func (e *ValidationError) Has(path, rule string) bool {
	for _, f := range e.Fields {
		if f.Field == path && (rule == "" || f.Rule == rule) {
			return true
		}
	}
	return false
}

// SerializationError 表示 JSON 格式错误
type SerializationError struct {
	Offset int64 // 出错位置（字节偏移），未知时为 0
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: %v (位置 %d)", constant.ErrSerialization.Error(), e.Err, e.Offset)
	}
	return fmt.Sprintf("%s: %v", constant.ErrSerialization.Error(), e.Err)
}

func (e *SerializationError) Unwrap() []error {
	return []error{constant.ErrSerialization, e.Err}
}

// fromValidator 将 validator 的错误转换为 ValidationError
func fromValidator(schema string, err error) error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", constant.ErrValidation, invalid.Error())
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{Schema: schema, Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Value:   printableValue(fe.Value()),
			Message: ruleMessage(fe),
		})
	}
	return out
}

// fromJSON 将 encoding/json 的错误分类：类型不匹配属于校验错误，其余属于序列化错误
func fromJSON(schema string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		expected := "unknown"
		if typeErr.Type != nil {
			expected = typeErr.Type.String()
		}
		return &ValidationError{Schema: schema, Fields: []FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Param:   expected,
			Value:   typeErr.Value,
			Message: fmt.Sprintf("类型不匹配: 期望 %s, 实际为 JSON %s", expected, typeErr.Value),
		}}}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SerializationError{Offset: syntaxErr.Offset, Err: err}
	}
	return &SerializationError{Err: err}
}

// fromDecoder 将 mapstructure 的错误转换为逐字段的类型错误。
// mapstructure 用 errors.Join 逐层汇总各字段的错误，这里展开到叶子，每个叶子对应一个字段
func fromDecoder(schema string, err error) error {
	leaves := decodeLeaves(err)
	out := &ValidationError{Schema: schema, Fields: make([]FieldError, 0, len(leaves))}
	for _, leaf := range leaves {
		msg := leaf.Error()
		out.Fields = append(out.Fields, FieldError{
			Field:   quotedName(msg),
			Rule:    "type",
			Message: "类型不匹配: " + msg,
		})
	}
	return out
}

// decodeLeaves 沿包装链找到 errors.Join 的结果并递归展开；没有组合错误时 err 本身就是叶子
func decodeLeaves(err error) []error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		joined, ok := e.(interface{ Unwrap() []error })
		if !ok {
			continue
		}
		var out []error
		for _, inner := range joined.Unwrap() {
			out = append(out, decodeLeaves(inner)...)
		}
		return out
	}
	return []error{err}
}

// fieldPath 去掉命名空间中的顶层结构体名：PhotoCreate.image_file_list[0].filename -> image_file_list[0].filename
// 泛型类型名中的类型参数可能带有包路径，方括号内的点不作为分隔符
func fieldPath(ns string) string {
	depth := 0
	for i := 0; i < len(ns); i++ {
		switch ns[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				return ns[i+1:]
			}
		}
	}
	return ns
}

// quotedName 提取 mapstructure 错误信息中第一个单引号包裹的字段名
func quotedName(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// printableValue 只保留标量值，避免把整个预览图或列表塞进错误信息
func printableValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		if rv.Len() > 64 {
			return rv.String()[:64] + "..."
		}
		return v
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v
	default:
		return nil
	}
}

func ruleMessage(fe validator.FieldError) string {
	param := fe.Param()
	kind := fe.Kind()
	isCollection := kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
	switch fe.Tag() {
	case "required":
		return "为必填字段"
	case "notnull":
		return "不能为 null"
	case "min":
		switch {
		case kind == reflect.String:
			return fmt.Sprintf("长度至少为 %s", param)
		case isCollection:
			return fmt.Sprintf("至少包含 %s 个元素", param)
		default:
			return fmt.Sprintf("必须大于或等于 %s", param)
		}
	case "max":
		switch {
		case kind == reflect.String:
			return fmt.Sprintf("长度不能超过 %s", param)
		case isCollection:
			return fmt.Sprintf("最多包含 %s 个元素", param)
		default:
			return fmt.Sprintf("必须小于或等于 %s", param)
		}
	case "gt":
		return fmt.Sprintf("必须大于 %s", param)
	case "gte":
		return fmt.Sprintf("必须大于或等于 %s", param)
	case "lt":
		return fmt.Sprintf("必须小于 %s", param)
	case "lte":
		return fmt.Sprintf("必须小于或等于 %s", param)
	case "eq":
		return fmt.Sprintf("必须等于 %s", param)
	case "visibility":
		return "必须是以下值之一: " + strings.Join(constant.VisibilityLevel("").EnumValues(), ", ")
	case "category":
		return "必须是以下值之一: " + strings.Join(constant.CategoryType("").EnumValues(), ", ")
	default:
		if param != "" {
			return fmt.Sprintf("未通过 %s=%s 校验", fe.Tag(), param)
		}
		return fmt.Sprintf("未通过 %s 校验", fe.Tag())
	}
}
