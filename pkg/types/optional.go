/*
 * @Description: 三态可选值，用于区分“未提供”、“显式 null”与“有值”
 * @Author: 安知鱼
 * @Date: 2026-09-03 11:59:31
 * @LastEditTime: 2026-09-16 13:05:13
 * @LastEditors: 安知鱼
 */
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Optional 用于处理部分更新中的字段。
// 零值表示字段未提供；配合 `json:",omitzero"` 使用时序列化会省略该字段，
// 显式 null 会原样写出为 null。
type Optional[T any] struct {
	value T
	set   bool // set 为 true 表示字段在输入中出现过
	null  bool // null 为 true 表示字段被显式置为 null
}

// Some 创建一个有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null 创建一个显式 null 的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet 表示字段是否出现过（包括显式 null）
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull 表示字段是否被显式置为 null
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// HasValue 表示字段出现且不为 null
func (o Optional[T]) HasValue() bool { return o.set && !o.null }

// IsZero 供 encoding/json 的 omitzero 使用，未提供的字段被省略
func (o Optional[T]) IsZero() bool { return !o.set }

// Get 返回值以及是否有值
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.HasValue()
}

// OrElse 在没有值时返回 fallback
func (o Optional[T]) OrElse(fallback T) T {
	if o.HasValue() {
		return o.value
	}
	return fallback
}

// Raw 返回底层值，未提供或为 null 时返回 nil。
// 校验器通过它读取真实值。
func (o Optional[T]) Raw() any {
	if !o.HasValue() {
		return nil
	}
	return o.value
}

// ElemType 返回被包装的类型，导出 JSON Schema 时使用
func (Optional[T]) ElemType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Set 设置一个值
func (o *Optional[T]) Set(v T) {
	o.value, o.set, o.null = v, true, false
}

// SetNull 将字段标记为显式 null
func (o *Optional[T]) SetNull() {
	var zero T
	o.value, o.set, o.null = zero, true, true
}

// Unset 恢复为未提供状态
func (o *Optional[T]) Unset() {
	*o = Optional[T]{}
}

// MarshalJSON 实现了 json.Marshaler 接口
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON 实现了 json.Unmarshaler 接口。
// 只有当键出现在 JSON 中时才会被调用，因此调用即意味着“已提供”。
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.SetNull()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// SetAny 用任意值设置字段，值会经过一次 JSON 转换以适配 T。
// 从 map 或持久化模型构造时使用。
func (o *Optional[T]) SetAny(v any) error {
	if v == nil {
		o.SetNull()
		return nil
	}
	if typed, ok := v.(T); ok {
		o.Set(typed)
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("无法转换为 Optional 值: %w", err)
	}
	return o.UnmarshalJSON(data)
}

func (o Optional[T]) String() string {
	switch {
	case !o.set:
		return "<unset>"
	case o.null:
		return "<null>"
	default:
		return fmt.Sprint(o.value)
	}
}
