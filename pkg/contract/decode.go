/*
 * @Description: 从 map、持久化模型或 JSON 构造 schema 实例
 * @Author: 安知鱼
 * @Date: 2026-09-04 14:02:55
 * @LastEditTime: 2026-09-19 10:44:12
 * @LastEditors: 安知鱼
 */
package contract

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Defaulter 由需要默认值的 schema 实现，构造时先于输入解码调用
type Defaulter interface {
	SetDefaults()
}

// anySetter 与 nullSetter 由 types.Optional 实现
type anySetter interface {
	SetAny(v any) error
}

type nullSetter interface {
	SetNull()
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	anySetterType = reflect.TypeOf((*anySetter)(nil)).Elem()
)

// 按顺序尝试的时间格式，兼容不带时区的本地时间
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Build 从 map、任意暴露同名字段的结构体或 JSON 文本构造并校验一个 schema 实例。
//
// 结构体输入按 json 标签或字段名匹配（忽略大小写和下划线），嵌入的结构体会被展开，
// 因此可以直接传入持久化模型而无需手动逐字段拷贝。
func Build[T any](input any) (*T, error) {
	out := new(T)
	applyDefaults(out)

	var err error
	switch in := input.(type) {
	case nil:
		err = Validate(out)
	case []byte:
		err = parseInto(out, in)
	case json.RawMessage:
		err = parseInto(out, in)
	case string:
		err = parseInto(out, []byte(in))
	default:
		decodeErr := decodeInto(out, input)
		if m, ok := input.(map[string]any); ok {
			markExplicitNulls(out, m)
		}
		err = withValidation(out, decodeErr)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Parse 反序列化 JSON 并校验
func Parse[T any](data []byte) (*T, error) {
	out := new(T)
	applyDefaults(out)
	if err := parseInto(out, data); err != nil {
		return nil, err
	}
	return out, nil
}

func applyDefaults(v any) {
	if d, ok := v.(Defaulter); ok {
		d.SetDefaults()
	}
}

// parseInto 反序列化并校验 out。类型不匹配时 encoding/json 仍会填充其余字段，
// 因此继续校验已解码的部分，与类型错误一并返回
func parseInto(out any, data []byte) error {
	if err := json.Unmarshal(data, out); err != nil {
		return withValidation(out, fromJSON(schemaName(out), err))
	}
	return Validate(out)
}

// withValidation 合并解码阶段的类型错误与校验错误，已报告类型错误的字段不再重复报告
func withValidation(out any, decodeErr error) error {
	if decodeErr == nil {
		return Validate(out)
	}
	var typeErr *ValidationError
	if !errors.As(decodeErr, &typeErr) {
		return decodeErr
	}
	var ve *ValidationError
	if errors.As(Validate(out), &ve) {
		typeErr.merge(ve)
	}
	return typeErr
}

func decodeInto(out any, input any) error {
	dec, err := newDecoder(out)
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fromDecoder(schemaName(out), err)
	}
	return nil
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    result,
		TagName:   "json",
		MatchName: matchName,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			optionalHook,
			integerHook,
			timeHook,
			jsonTextHook,
			bytesToTextHook,
			structToMapHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("初始化解码器失败: %w", err)
	}
	return dec, nil
}

// matchName 忽略大小写、下划线和连字符，使 UserID 能匹配 user_id
func matchName(mapKey, fieldName string) bool {
	return normalizeName(mapKey) == normalizeName(fieldName)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(s))
}

// markExplicitNulls 处理 map 中值为 nil 的键：对 Optional 字段而言这代表显式 null
func markExplicitNulls(out any, m map[string]any) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}
	v := rv.Elem()
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		setter, ok := v.Field(i).Addr().Interface().(nullSetter)
		if !ok {
			continue
		}
		name := jsonName(f)
		for k, val := range m {
			if val == nil && matchName(k, name) {
				setter.SetNull()
				break
			}
		}
	}
}

func passthrough(from reflect.Value) any {
	if !from.IsValid() {
		return nil
	}
	return from.Interface()
}

// optionalHook 把普通值包装为目标 Optional 类型
func optionalHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() {
		return passthrough(from), nil
	}
	tt := to.Type()
	if from.Type() == tt || !reflect.PointerTo(tt).Implements(anySetterType) {
		return from.Interface(), nil
	}
	nv := reflect.New(tt)
	if err := nv.Interface().(anySetter).SetAny(from.Interface()); err != nil {
		return nil, err
	}
	return nv.Elem().Interface(), nil
}

// integerHook 拒绝带小数部分或超出范围的浮点数。
// json.Unmarshal 得到的 map 中数字都是 float64，mapstructure 默认会直接截断
func integerHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() {
		return passthrough(from), nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return from.Interface(), nil
	}
	f := from.Float()
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || to.OverflowInt(int64(f)) {
			return nil, fmt.Errorf("期望整数类型 '%s'，实际为 %v", to.Type(), f)
		}
		return int64(f), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || to.OverflowUint(uint64(f)) {
			return nil, fmt.Errorf("期望非负整数类型 '%s'，实际为 %v", to.Type(), f)
		}
		return uint64(f), nil
	}
	return from.Interface(), nil
}

// timeHook 解析字符串形式的时间
func timeHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() || to.Type() != timeType || from.Kind() != reflect.String {
		return passthrough(from), nil
	}
	s := strings.TrimSpace(from.String())
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("无法解析时间 %q", s)
}

// jsonTextHook 解析以 JSON 文本形式存储的 map 字段（例如数据库中的 TEXT 列）
func jsonTextHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() || to.Kind() != reflect.Map {
		return passthrough(from), nil
	}
	var raw []byte
	switch {
	case from.Kind() == reflect.String:
		raw = []byte(from.String())
	case from.Kind() == reflect.Slice && from.Type().Elem().Kind() == reflect.Uint8:
		raw = from.Bytes()
	default:
		return from.Interface(), nil
	}
	m := reflect.New(to.Type())
	if err := json.Unmarshal(raw, m.Interface()); err != nil {
		return nil, fmt.Errorf("无法将 JSON 文本解析为对象: %w", err)
	}
	return m.Elem().Interface(), nil
}

// bytesToTextHook 将二进制内容（如预览图 BLOB）编码为 base64 文本
func bytesToTextHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() || to.Kind() != reflect.String {
		return passthrough(from), nil
	}
	if from.Kind() == reflect.Slice && from.Type().Elem().Kind() == reflect.Uint8 {
		return base64.StdEncoding.EncodeToString(from.Bytes()), nil
	}
	return from.Interface(), nil
}

// structToMapHook 将来源结构体浅层展开为 map，时间等值保持原样交给后续解码
func structToMapHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() {
		return passthrough(from), nil
	}
	src := from
	for src.Kind() == reflect.Pointer || src.Kind() == reflect.Interface {
		if src.IsNil() {
			return from.Interface(), nil
		}
		src = src.Elem()
	}
	if src.Kind() != reflect.Struct || src.Type() == timeType {
		return from.Interface(), nil
	}
	tt := to.Type()
	for tt.Kind() == reflect.Pointer {
		tt = tt.Elem()
	}
	if tt == src.Type() || (tt.Kind() != reflect.Struct && tt.Kind() != reflect.Map) {
		return from.Interface(), nil
	}
	return structToMap(src), nil
}

func structToMap(v reflect.Value) map[string]any {
	m := make(map[string]any)
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		fv := v.Field(i)
		// 嵌入的结构体即使类型未导出，其导出字段仍会被提升，需要先于导出检查展开
		if f.Anonymous && f.Tag.Get("json") == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct && inner.Type() != timeType {
				for k, val := range structToMap(inner) {
					if _, exists := m[k]; !exists {
						m[k] = val
					}
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "-" {
			continue
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		m[name] = fv.Interface()
	}
	return m
}
