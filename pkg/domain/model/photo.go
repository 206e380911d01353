/*
 * @Description: 照片（Photo）数据契约
 * @Author: 安知鱼
 * @Date: 2026-09-06 11:03:52
 * @LastEditTime: 2026-09-19 16:27:30
 * @LastEditors: 安知鱼
 */
package model

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
	"github.com/anzhiyu-c/imalink-schemas/pkg/types"
)

func init() {
	contract.RegisterOptional[JSONMap]()
	contract.RegisterStructValidation(photoUpdateStructLevel, PhotoUpdate{})
}

// PhotoCreate 是创建照片的输入结构。
//
// 由图像处理服务根据源文件生成，前端补充用户整理字段后提交给后端：
//   - hothash 是 hotpreview 的 SHA256，作为照片的唯一标识，赋值后不可修改
//   - exif_dict 保存完整的 EXIF 数据，只有 taken_at 与 GPS 坐标会复制到顶层用于索引
//   - image_file_list 至少包含一个源文件（JPEG + RAW 伴随文件等）
type PhotoCreate struct {
	// 身份标识
	Hothash    string `json:"hothash" validate:"required" contract:"immutable" description:"SHA256 hash of hotpreview (unique ID)"`
	Hotpreview string `json:"hotpreview" validate:"required" description:"Base64 encoded JPEG preview (~200px)"`

	ExifDict JSONMap `json:"exif_dict" description:"Complete EXIF data (camera_make, iso, etc. - flexible schema)"`

	Width  int `json:"width" validate:"gt=0" description:"Image width in pixels"`
	Height int `json:"height" validate:"gt=0" description:"Image height in pixels"`

	// 时间与位置（exif_dict 中对应值的索引副本），经纬度可以只有其一
	TakenAt      *time.Time `json:"taken_at" description:"When photo was taken (for timeline queries)"`
	GPSLatitude  *float64   `json:"gps_latitude" description:"GPS latitude (for map queries)"`
	GPSLongitude *float64   `json:"gps_longitude" description:"GPS longitude (for map queries)"`

	// 用户整理字段，user_id 为 0 视为未提供所有者，会被 required 拒绝
	UserID          int64                  `json:"user_id" validate:"required" description:"Owner user ID"`
	Rating          int                    `json:"rating" default:"0" validate:"min=0,max=5" description:"Star rating (0-5)"`
	Category        *constant.CategoryType `json:"category" validate:"omitempty,category" description:"Category type (photo, screenshot, video, etc.)"`
	ImportSessionID *int64                 `json:"import_session_id" description:"Import batch this photo belongs to"`
	AuthorID        *int64                 `json:"author_id" description:"Photographer/creator ID"`
	StackID         *int64                 `json:"stack_id" description:"Photo stack ID (for related images)"`

	// 用户修正数据
	TimelocCorrection JSONMap `json:"timeloc_correction" description:"Time/location corrections (timezone fix, GPS override, etc.)"`
	ViewCorrection    JSONMap `json:"view_correction" description:"Visual adjustments (rotation, crop hints for frontend)"`

	Visibility constant.VisibilityLevel `json:"visibility" default:"private" validate:"visibility" description:"Visibility level (private/space/authenticated/public)"`

	Coldpreview     *string `json:"coldpreview" description:"Base64 encoded larger preview (~1000px) - optional"`
	ColdpreviewPath *string `json:"coldpreview_path" description:"Filesystem path to coldpreview if stored separately"`

	ImageFileList []ImageFileCreate `json:"image_file_list" validate:"required,min=1,dive" description:"One or more source image files (JPEG, RAW, etc.)"`
}

// SetDefaults 实现 contract.Defaulter，rating 的零值即默认值 0
func (p *PhotoCreate) SetDefaults() {
	p.Visibility = constant.DefaultVisibility
}

// SetRating 修改评分，超出 0-5 时返回校验错误且不修改原值
func (p *PhotoCreate) SetRating(rating int) error {
	return contract.Assign(p, "rating", rating)
}

// SetVisibility 修改可见性
func (p *PhotoCreate) SetVisibility(v constant.VisibilityLevel) error {
	return contract.Assign(p, "visibility", v)
}

// SetCategory 修改分类
func (p *PhotoCreate) SetCategory(c constant.CategoryType) error {
	return contract.Assign(p, "category", c)
}

// AddImageFile 校验并追加一个源文件
func (p *PhotoCreate) AddImageFile(f ImageFileCreate) error {
	files := make([]ImageFileCreate, 0, len(p.ImageFileList)+1)
	files = append(files, p.ImageFileList...)
	files = append(files, f)
	return contract.Assign(p, "image_file_list", files)
}

// PhotoUpdate 是更新照片中用户可编辑字段的输入结构。
// 每个字段都是三态的：未提供表示保持不变，显式 null 表示清空，有值表示修改。
type PhotoUpdate struct {
	Rating            types.Optional[int]                      `json:"rating,omitzero" validate:"omitempty,min=0,max=5"`
	Category          types.Optional[constant.CategoryType]    `json:"category,omitzero" validate:"omitempty,category"`
	AuthorID          types.Optional[int64]                    `json:"author_id,omitzero"`
	StackID           types.Optional[int64]                    `json:"stack_id,omitzero"`
	TimelocCorrection types.Optional[JSONMap]                  `json:"timeloc_correction,omitzero"`
	ViewCorrection    types.Optional[JSONMap]                  `json:"view_correction,omitzero"`
	Visibility        types.Optional[constant.VisibilityLevel] `json:"visibility,omitzero" validate:"omitempty,visibility"`
}

// rating 与 visibility 对应的存储列不可为空，因此不接受显式 null
func photoUpdateStructLevel(sl validator.StructLevel) {
	u, ok := sl.Current().Interface().(PhotoUpdate)
	if !ok {
		return
	}
	if u.Rating.IsNull() {
		sl.ReportError(u.Rating, "rating", "Rating", "notnull", "")
	}
	if u.Visibility.IsNull() {
		sl.ReportError(u.Visibility, "visibility", "Visibility", "notnull", "")
	}
}

// IsEmpty 表示没有任何字段需要修改
func (u PhotoUpdate) IsEmpty() bool {
	return !u.Rating.IsSet() && !u.Category.IsSet() && !u.AuthorID.IsSet() && !u.StackID.IsSet() &&
		!u.TimelocCorrection.IsSet() && !u.ViewCorrection.IsSet() && !u.Visibility.IsSet()
}

// Changes 返回需要修改的字段，键为 JSON 名称，显式 null 对应 nil。
// 持久化层据此只更新出现过的列。
func (u PhotoUpdate) Changes() map[string]any {
	changes := make(map[string]any)
	putChange(changes, "rating", u.Rating)
	if u.Category.IsSet() {
		if c, ok := u.Category.Get(); ok {
			changes["category"] = string(c)
		} else {
			changes["category"] = nil
		}
	}
	putChange(changes, "author_id", u.AuthorID)
	putChange(changes, "stack_id", u.StackID)
	putChange(changes, "timeloc_correction", u.TimelocCorrection)
	putChange(changes, "view_correction", u.ViewCorrection)
	if v, ok := u.Visibility.Get(); ok {
		changes["visibility"] = string(v)
	}
	return changes
}

func putChange[T any](changes map[string]any, key string, o types.Optional[T]) {
	if o.IsSet() {
		changes[key] = o.Raw()
	}
}

// ApplyTo 将修改应用到一个照片响应上，用于客户端的乐观更新
func (u PhotoUpdate) ApplyTo(p *PhotoResponse) error {
	if err := contract.Validate(u); err != nil {
		return err
	}
	if v, ok := u.Rating.Get(); ok {
		p.Rating = v
	}
	if u.Category.IsSet() {
		p.Category = nil
		if c, ok := u.Category.Get(); ok {
			s := string(c)
			p.Category = &s
		}
	}
	applyOptionalPtr(&p.AuthorID, u.AuthorID)
	applyOptionalPtr(&p.StackID, u.StackID)
	if u.TimelocCorrection.IsSet() {
		p.TimelocCorrection = u.TimelocCorrection.OrElse(nil).Clone()
	}
	if u.ViewCorrection.IsSet() {
		p.ViewCorrection = u.ViewCorrection.OrElse(nil).Clone()
	}
	if v, ok := u.Visibility.Get(); ok {
		p.Visibility = string(v)
	}
	return nil
}

func applyOptionalPtr[T any](dst **T, o types.Optional[T]) {
	if !o.IsSet() {
		return
	}
	if v, ok := o.Get(); ok {
		*dst = &v
		return
	}
	*dst = nil
}

// PhotoResponse 是照片的响应结构。
// hotpreview 是二进制预览图，不包含在 JSON 响应中，需要通过单独的接口获取。
// category 与 visibility 以普通字符串返回，以兼容将来新增的取值。
type PhotoResponse struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	Hothash  string  `json:"hothash" contract:"immutable"`
	ExifDict JSONMap `json:"exif_dict"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`

	TakenAt      *time.Time `json:"taken_at"`
	GPSLatitude  *float64   `json:"gps_latitude"`
	GPSLongitude *float64   `json:"gps_longitude"`

	Rating   int     `json:"rating"`
	Category *string `json:"category"`

	ImportSessionID *int64  `json:"import_session_id"`
	AuthorID        *int64  `json:"author_id"`
	StackID         *int64  `json:"stack_id"`
	ColdpreviewPath *string `json:"coldpreview_path"`

	TimelocCorrection JSONMap `json:"timeloc_correction"`
	ViewCorrection    JSONMap `json:"view_correction"`

	Visibility string `json:"visibility"`

	// 关联数据：nil 表示查询未请求，空切片表示已请求但没有结果
	ImageFiles []ImageFileResponse `json:"image_files" description:"Source files, present only when requested"`
	Tags       []any               `json:"tags" description:"Tags, present only when requested"`
}

// HasImageFiles 表示查询是否请求了源文件列表
func (p *PhotoResponse) HasImageFiles() bool {
	return p.ImageFiles != nil
}

// HasTags 表示查询是否请求了标签列表
func (p *PhotoResponse) HasTags() bool {
	return p.Tags != nil
}

// NewPhotoCreate 从 map、结构体或 JSON 构造 PhotoCreate
func NewPhotoCreate(input any) (*PhotoCreate, error) {
	return contract.Build[PhotoCreate](input)
}

// NewPhotoUpdate 从 map、结构体或 JSON 构造 PhotoUpdate
func NewPhotoUpdate(input any) (*PhotoUpdate, error) {
	return contract.Build[PhotoUpdate](input)
}

// NewPhotoResponse 通常由持久化模型直接构造
func NewPhotoResponse(input any) (*PhotoResponse, error) {
	return contract.Build[PhotoResponse](input)
}
