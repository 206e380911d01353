package constant

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVisibilityLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "私有", input: "private", valid: true},
		{name: "共享空间", input: "space", valid: true},
		{name: "登录用户", input: "authenticated", valid: true},
		{name: "公开", input: "public", valid: true},
		{name: "大小写不同", input: "Public", valid: false},
		{name: "空字符串", input: "", valid: false},
		{name: "未知取值", input: "friends", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibilityLevel(tt.input).IsValid(); got != tt.valid {
				t.Errorf("VisibilityLevel(%q).IsValid() = %v, want %v", tt.input, got, tt.valid)
			}
			v, err := ParseVisibilityLevel(tt.input)
			if tt.valid {
				if err != nil || v.String() != tt.input {
					t.Errorf("ParseVisibilityLevel(%q) = %q, %v", tt.input, v, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidEnumValue) {
				t.Errorf("ParseVisibilityLevel(%q) 应返回 ErrInvalidEnumValue，实际为 %v", tt.input, err)
			}
		})
	}
}

func TestCategoryType(t *testing.T) {
	for _, c := range []string{"photo", "screenshot", "video", "collage", "story"} {
		if _, err := ParseCategoryType(c); err != nil {
			t.Errorf("ParseCategoryType(%q) 返回错误: %v", c, err)
		}
	}
	if _, err := ParseCategoryType("selfie"); !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("ParseCategoryType(%q) 应返回 ErrInvalidEnumValue，实际为 %v", "selfie", err)
	}
}

func TestEnumValues(t *testing.T) {
	t.Run("可见性按声明顺序", func(t *testing.T) {
		want := []string{"private", "space", "authenticated", "public"}
		if diff := cmp.Diff(want, VisibilityLevel("").EnumValues()); diff != "" {
			t.Errorf("EnumValues() 不一致 (-want +got):\n%s", diff)
		}
	})
	t.Run("分类按声明顺序", func(t *testing.T) {
		want := []string{"photo", "screenshot", "video", "collage", "story"}
		if diff := cmp.Diff(want, CategoryType("").EnumValues()); diff != "" {
			t.Errorf("EnumValues() 不一致 (-want +got):\n%s", diff)
		}
	})
	t.Run("默认可见性为私有", func(t *testing.T) {
		if DefaultVisibility != VisibilityPrivate {
			t.Errorf("DefaultVisibility = %q, want %q", DefaultVisibility, VisibilityPrivate)
		}
	})
}
