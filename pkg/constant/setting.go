/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-08 15:20:44
 * @LastEditTime: 2026-09-18 10:12:09
 * @LastEditors: 安知鱼
 */
package constant

// SettingKey 为导出工具使用的配置键定义了类型安全的常量，格式为 "分区.键名"
type SettingKey string

// String 方便地将 SettingKey 转换为 string 类型。
func (k SettingKey) String() string {
	return string(k)
}

const (
	// --- Schema 导出配置 ---
	KeyExportOutput      SettingKey = "Export.Output"
	KeyExportTitle       SettingKey = "Export.Title"
	KeyExportDescription SettingKey = "Export.Description"
	KeyExportIndent      SettingKey = "Export.Indent"
)
