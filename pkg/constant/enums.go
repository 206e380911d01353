/*
 * @Description: 照片可见性与分类枚举
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:12:40
 * @LastEditTime: 2026-09-14 16:20:05
 * @LastEditors: 安知鱼
 */
package constant

import "fmt"

// VisibilityLevel 定义了照片的可见性级别，序列化时始终为其字符串值
type VisibilityLevel string

// 定义支持的可见性级别常量
const (
	VisibilityPrivate       VisibilityLevel = "private"       // 仅所有者可见
	VisibilitySpace         VisibilityLevel = "space"         // 共享空间成员可见
	VisibilityAuthenticated VisibilityLevel = "authenticated" // 登录用户可见
	VisibilityPublic        VisibilityLevel = "public"        // 所有人可见

	// DefaultVisibility 是新建照片的默认可见性
	DefaultVisibility = VisibilityPrivate
)

var visibilityLevels = []VisibilityLevel{
	VisibilityPrivate,
	VisibilitySpace,
	VisibilityAuthenticated,
	VisibilityPublic,
}

// IsValid 检查给定的值是否属于可见性级别的封闭集合
func (v VisibilityLevel) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilitySpace, VisibilityAuthenticated, VisibilityPublic:
		return true
	default:
		return false
	}
}

func (v VisibilityLevel) String() string {
	return string(v)
}

// EnumValues 按声明顺序返回全部取值，导出 JSON Schema 时内联为 enum
func (VisibilityLevel) EnumValues() []string {
	values := make([]string, len(visibilityLevels))
	for i, v := range visibilityLevels {
		values[i] = string(v)
	}
	return values
}

// ParseVisibilityLevel 将字符串解析为可见性级别
func ParseVisibilityLevel(s string) (VisibilityLevel, error) {
	v := VisibilityLevel(s)
	if !v.IsValid() {
		return "", fmt.Errorf("%w: 可见性级别 %q", ErrInvalidEnumValue, s)
	}
	return v, nil
}

// CategoryType 定义了照片的分类类型
type CategoryType string

const (
	CategoryPhoto      CategoryType = "photo"
	CategoryScreenshot CategoryType = "screenshot"
	CategoryVideo      CategoryType = "video"
	CategoryCollage    CategoryType = "collage"
	CategoryStory      CategoryType = "story"
)

var categoryTypes = []CategoryType{
	CategoryPhoto,
	CategoryScreenshot,
	CategoryVideo,
	CategoryCollage,
	CategoryStory,
}

// IsValid 检查给定的值是否属于分类类型的封闭集合
func (c CategoryType) IsValid() bool {
	switch c {
	case CategoryPhoto, CategoryScreenshot, CategoryVideo, CategoryCollage, CategoryStory:
		return true
	default:
		return false
	}
}

func (c CategoryType) String() string {
	return string(c)
}

// EnumValues 按声明顺序返回全部取值
func (CategoryType) EnumValues() []string {
	values := make([]string, len(categoryTypes))
	for i, c := range categoryTypes {
		values[i] = string(c)
	}
	return values
}

// ParseCategoryType 将字符串解析为分类类型
func ParseCategoryType(s string) (CategoryType, error) {
	c := CategoryType(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: 分类类型 %q", ErrInvalidEnumValue, s)
	}
	return c, nil
}
