/*
 * @Description: 通过反射将 schema 结构体转换为 JSON Schema
 * @Author: 安知鱼
 * @Date: 2026-09-10 10:18:36
 * @LastEditTime: 2026-09-19 17:45:03
 * @LastEditors: 安知鱼
 */
package schema_export

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/spec"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

// enumer 由封闭集合的枚举类型实现，导出时内联为 enum
type enumer interface {
	EnumValues() []string
}

// elemTyper 由 types.Optional 实现，导出时按被包装的类型处理并允许 null
type elemTyper interface {
	ElemType() reflect.Type
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	enumerType   = reflect.TypeOf((*enumer)(nil)).Elem()
	optionalType = reflect.TypeOf((*elemTyper)(nil)).Elem()
)

// generator 在一次 Build 内收集所有定义，嵌套结构体只生成一次
type generator struct {
	defs  spec.Definitions
	names map[reflect.Type]string
	busy  map[reflect.Type]bool
}

func newGenerator() *generator {
	return &generator{
		defs:  spec.Definitions{},
		names: make(map[reflect.Type]string),
		busy:  make(map[reflect.Type]bool),
	}
}

// register 预先登记清单中的名称，使嵌套引用使用清单中的名字
func (g *generator) register(name string, t reflect.Type) error {
	if _, ok := g.defs[name]; ok {
		return fmt.Errorf("%w: 重复的 schema 名称 %q", constant.ErrSchemaExport, name)
	}
	for _, n := range g.names {
		if n == name {
			return fmt.Errorf("%w: 重复的 schema 名称 %q", constant.ErrSchemaExport, name)
		}
	}
	g.names[t] = name
	return nil
}

// define 生成结构体定义并返回指向它的引用
func (g *generator) define(t reflect.Type) (spec.Schema, error) {
	name, ok := g.names[t]
	if !ok {
		name = t.Name()
		if name == "" {
			return spec.Schema{}, fmt.Errorf("%w: 不支持匿名结构体 %s", constant.ErrSchemaExport, t)
		}
		g.names[t] = name
	}
	ref := *spec.RefSchema("#/definitions/" + name)

	if _, done := g.defs[name]; done || g.busy[t] {
		return ref, nil
	}
	g.busy[t] = true
	defer delete(g.busy, t)

	s, err := g.structSchema(t)
	if err != nil {
		return spec.Schema{}, err
	}
	s.Title = name
	g.defs[name] = s
	return ref, nil
}

func (g *generator) structSchema(t reflect.Type) (spec.Schema, error) {
	s := new(spec.Schema).Typed("object", "")
	s.Properties = spec.SchemaProperties{}

	for _, f := range fields(t) {
		name := jsonName(f)
		prop, nullable, err := g.typeSchema(f.Type)
		if err != nil {
			return spec.Schema{}, fmt.Errorf("字段 %s.%s: %w", t.Name(), f.Name, err)
		}

		rules := parseRules(f.Tag.Get("validate"))
		applyRules(&prop, baseType(f.Type), rules)

		_, hasDefault := f.Tag.Lookup("default")
		if hasDefault {
			prop.Default = defaultValue(baseType(f.Type), f.Tag.Get("default"))
		}
		if desc := f.Tag.Get("description"); desc != "" {
			prop.Description = desc
		}

		_, required := rules["required"]
		_, omitEmpty := rules["omitempty"]
		if nullable && !required {
			prop = nullableSchema(prop)
		}
		if required || (!nullable && !hasDefault && !omitEmpty && !jsonOmitted(f)) {
			s.Required = append(s.Required, name)
		}
		s.SetProperty(name, prop)
	}
	return *s, nil
}

// typeSchema 返回 Go 类型对应的 schema，以及该类型是否可以为 null
func (g *generator) typeSchema(t reflect.Type) (spec.Schema, bool, error) {
	if isOptional(t) {
		s, _, err := g.typeSchema(optionalElem(t))
		return s, true, err
	}
	if t.Kind() == reflect.Pointer {
		s, _, err := g.typeSchema(t.Elem())
		return s, true, err
	}
	if t == timeType {
		return *spec.DateTimeProperty(), false, nil
	}
	if t.Implements(enumerType) {
		values := reflect.Zero(t).Interface().(enumer).EnumValues()
		enum := make([]any, len(values))
		for i, v := range values {
			enum[i] = v
		}
		return *spec.StringProperty().WithEnum(enum...), false, nil
	}

	switch t.Kind() {
	case reflect.String:
		return *spec.StringProperty(), false, nil
	case reflect.Bool:
		return *spec.BoolProperty(), false, nil
	case reflect.Int64, reflect.Uint64:
		return *spec.Int64Property(), false, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return *new(spec.Schema).Typed("integer", ""), false, nil
	case reflect.Float32, reflect.Float64:
		return *new(spec.Schema).Typed("number", ""), false, nil
	case reflect.Interface:
		return spec.Schema{}, false, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return spec.Schema{}, false, fmt.Errorf("%w: map 的键必须是字符串，实际为 %s", constant.ErrSchemaExport, t.Key())
		}
		if t.Elem().Kind() == reflect.Interface {
			return *spec.MapProperty(nil), true, nil
		}
		elem, _, err := g.typeSchema(t.Elem())
		if err != nil {
			return spec.Schema{}, false, err
		}
		return *spec.MapProperty(&elem), true, nil
	case reflect.Slice, reflect.Array:
		elem, elemNullable, err := g.typeSchema(t.Elem())
		if err != nil {
			return spec.Schema{}, false, err
		}
		if elemNullable {
			elem = nullableSchema(elem)
		}
		return *spec.ArrayProperty(&elem), t.Kind() == reflect.Slice, nil
	case reflect.Struct:
		s, err := g.define(t)
		return s, false, err
	default:
		return spec.Schema{}, false, fmt.Errorf("%w: 不支持的类型 %s", constant.ErrSchemaExport, t)
	}
}

// nullableSchema 允许 schema 取 null：有 type 时追加 "null"，引用则包装为 anyOf
func nullableSchema(s spec.Schema) spec.Schema {
	switch {
	case s.Ref.String() != "":
		return spec.Schema{SchemaProps: spec.SchemaProps{
			Description: s.Description,
			AnyOf:       []spec.Schema{{SchemaProps: spec.SchemaProps{Ref: s.Ref}}, *new(spec.Schema).Typed("null", "")},
		}}
	case len(s.Type) == 0:
		return s
	}
	if !s.Type.Contains("null") {
		s.AddType("null", "")
	}
	if len(s.Enum) > 0 {
		s.Enum = append(s.Enum, nil)
	}
	return s
}

func isOptional(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer && t.Implements(optionalType)
}

func optionalElem(t reflect.Type) reflect.Type {
	return reflect.Zero(t).Interface().(elemTyper).ElemType()
}

// fields 返回参与序列化的字段，嵌入的结构体会被展开
func fields(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	seen := make(map[string]bool)
	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		for i := range t.NumField() {
			f := t.Field(i)
			if f.Anonymous {
				ft := f.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
					walk(ft)
					continue
				}
			}
			if !f.IsExported() {
				continue
			}
			name := jsonName(f)
			if name == "-" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, f)
		}
	}
	walk(t)
	return out
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// jsonOmitted 表示字段带有 omitempty 或 omitzero，序列化时可能不出现
func jsonOmitted(f reflect.StructField) bool {
	_, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			return true
		}
	}
	return false
}

// baseType 去掉指针与 Optional 包装，返回用于解释校验规则的类型
func baseType(t reflect.Type) reflect.Type {
	for {
		switch {
		case isOptional(t):
			t = optionalElem(t)
		case t.Kind() == reflect.Pointer:
			t = t.Elem()
		default:
			return t
		}
	}
}

// parseRules 解析 validate 标签，dive 之后的规则作用于元素，这里不展开
func parseRules(tag string) map[string]string {
	rules := make(map[string]string)
	if tag == "" {
		return rules
	}
	for _, part := range strings.Split(tag, ",") {
		if part == "dive" {
			break
		}
		name, param, _ := strings.Cut(part, "=")
		rules[name] = param
	}
	return rules
}

// applyRules 将校验规则映射为 JSON Schema 约束
func applyRules(s *spec.Schema, t reflect.Type, rules map[string]string) {
	kind := t.Kind()
	isInt := kind >= reflect.Int && kind <= reflect.Uint64
	isNumber := isInt || kind == reflect.Float32 || kind == reflect.Float64
	isCollection := kind == reflect.Slice || kind == reflect.Array

	for name, param := range rules {
		n, err := strconv.ParseFloat(param, 64)
		hasParam := err == nil

		switch {
		case name == "required" && kind == reflect.String:
			if s.MinLength == nil {
				s.WithMinLength(1)
			}
		case !hasParam:
			continue
		case isNumber && (name == "min" || name == "gte"):
			s.WithMinimum(n, false)
		case isNumber && (name == "max" || name == "lte"):
			s.WithMaximum(n, false)
		case isInt && name == "gt":
			s.WithMinimum(n+1, false)
		case isInt && name == "lt":
			s.WithMaximum(n-1, false)
		case isNumber && name == "gt":
			s.WithMinimum(n, true)
		case isNumber && name == "lt":
			s.WithMaximum(n, true)
		case kind == reflect.String && name == "min":
			s.WithMinLength(int64(n))
		case kind == reflect.String && name == "max":
			s.WithMaxLength(int64(n))
		case isCollection && name == "min":
			s.WithMinItems(int64(n))
		case isCollection && name == "max":
			s.WithMaxItems(int64(n))
		}
	}
}

// defaultValue 按字段类型转换 default 标签
func defaultValue(t reflect.Type, raw string) any {
	switch {
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	case t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uint64:
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return v
		}
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case t.Kind() == reflect.Bool:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return raw
}
