package types

import (
	"encoding/json"
	"testing"
)

type patch struct {
	Rating Optional[int]    `json:"rating,omitzero"`
	Note   Optional[string] `json:"note,omitzero"`
}

func TestOptionalStates(t *testing.T) {
	var unset Optional[int]
	if unset.IsSet() || unset.IsNull() || unset.HasValue() || !unset.IsZero() {
		t.Errorf("零值应为未提供状态: %v", unset)
	}

	null := Null[int]()
	if !null.IsSet() || !null.IsNull() || null.HasValue() || null.IsZero() {
		t.Errorf("Null() 状态错误: %v", null)
	}
	if null.Raw() != nil {
		t.Errorf("显式 null 的 Raw() 应为 nil，实际为 %v", null.Raw())
	}

	some := Some(3)
	if v, ok := some.Get(); !ok || v != 3 {
		t.Errorf("Some(3).Get() = %v, %v", v, ok)
	}
	if got := some.OrElse(5); got != 3 {
		t.Errorf("Some(3).OrElse(5) = %d", got)
	}
	if got := null.OrElse(5); got != 5 {
		t.Errorf("Null().OrElse(5) = %d", got)
	}

	some.Unset()
	if some.IsSet() {
		t.Error("Unset 后应恢复为未提供状态")
	}
}

func TestOptionalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSet   bool
		wantNull  bool
		wantValue int
		output    string
	}{
		{name: "字段缺失", input: `{}`, output: `{}`},
		{name: "显式null", input: `{"rating":null}`, wantSet: true, wantNull: true, output: `{"rating":null}`},
		{name: "有值", input: `{"rating":4}`, wantSet: true, wantValue: 4, output: `{"rating":4}`},
		{name: "零值也算提供", input: `{"rating":0}`, wantSet: true, output: `{"rating":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("Unmarshal 失败: %v", err)
			}
			if p.Rating.IsSet() != tt.wantSet || p.Rating.IsNull() != tt.wantNull {
				t.Errorf("状态 = set:%v null:%v, want set:%v null:%v",
					p.Rating.IsSet(), p.Rating.IsNull(), tt.wantSet, tt.wantNull)
			}
			if v := p.Rating.OrElse(0); v != tt.wantValue {
				t.Errorf("值 = %d, want %d", v, tt.wantValue)
			}
			out, err := json.Marshal(p)
			if err != nil {
				t.Fatalf("Marshal 失败: %v", err)
			}
			if string(out) != tt.output {
				t.Errorf("Marshal = %s, want %s", out, tt.output)
			}
		})
	}

	t.Run("类型不匹配", func(t *testing.T) {
		var p patch
		if err := json.Unmarshal([]byte(`{"rating":"high"}`), &p); err == nil {
			t.Error("字符串赋给 Optional[int] 应当失败")
		}
	})
}

func TestOptionalSetAny(t *testing.T) {
	var o Optional[int64]
	if err := o.SetAny(nil); err != nil || !o.IsNull() {
		t.Errorf("SetAny(nil) 应设为显式 null: %v, %v", o, err)
	}
	if err := o.SetAny(int64(7)); err != nil || o.OrElse(0) != 7 {
		t.Errorf("SetAny(int64) = %v, %v", o, err)
	}
	// 来自 map 的数字可能是 int 或 float64
	if err := o.SetAny(9); err != nil || o.OrElse(0) != 9 {
		t.Errorf("SetAny(int) = %v, %v", o, err)
	}
	if err := o.SetAny(float64(11)); err != nil || o.OrElse(0) != 11 {
		t.Errorf("SetAny(float64) = %v, %v", o, err)
	}
	if err := o.SetAny("abc"); err == nil {
		t.Error("SetAny(string) 应当失败")
	}
	if got := o.ElemType().Kind().String(); got != "int64" {
		t.Errorf("ElemType() = %s, want int64", got)
	}
}
