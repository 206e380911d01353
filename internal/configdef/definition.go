package configdef

import (
	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

// Definition 定义了单个配置项的所有属性。
type Definition struct {
	Key     constant.SettingKey
	Value   string
	Comment string
}

// AllSettings 是导出工具所有配置项的"单一事实来源"，
// 默认值、环境变量覆盖和默认配置文件都由它生成
var AllSettings = []Definition{
	// --- Schema 导出配置 ---
	{Key: constant.KeyExportOutput, Value: "schemas.json", Comment: "导出文件路径，相对路径基于当前工作目录"},
	{Key: constant.KeyExportTitle, Value: "ImaLink Schemas", Comment: "JSON Schema 文档标题"},
	{Key: constant.KeyExportDescription, Value: "Shared data schemas for ImaLink ecosystem", Comment: "JSON Schema 文档描述"},
	{Key: constant.KeyExportIndent, Value: "2", Comment: "JSON 缩进空格数，0 表示紧凑输出"},
}

// Lookup 按键查找配置项定义
func Lookup(key constant.SettingKey) (Definition, bool) {
	for _, def := range AllSettings {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
