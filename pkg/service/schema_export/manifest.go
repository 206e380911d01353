package schema_export

import (
	"github.com/anzhiyu-c/imalink-schemas/pkg/domain/model"
)

// Manifest 是对外发布的 schema 清单，新增 schema 时需要在这里显式登记。
// PhotoUpdate 只在服务端内部使用，不生成给其他语言。
var Manifest = []Entry{
	{Name: "PhotoCreate", Value: model.PhotoCreate{}},
	{Name: "PhotoResponse", Value: model.PhotoResponse{}},
	{Name: "ImageFileCreate", Value: model.ImageFileCreate{}},
	{Name: "ImageFileResponse", Value: model.ImageFileResponse{}},
}
