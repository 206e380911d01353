/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:05:11
 * @LastEditTime: 2026-09-15 21:47:30
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义数据契约层相关的标准错误，具体错误类型通过 Unwrap 归类到这些哨兵错误
var (
	// ErrValidation 表示一个或多个字段未通过校验，调用方可以将其转换为 400/422
	ErrValidation = errors.New("数据校验失败")

	// ErrSerialization 表示 JSON 格式错误，无法反序列化
	ErrSerialization = errors.New("序列化失败")

	// ErrInvalidEnumValue 表示取值不在枚举的封闭集合内
	ErrInvalidEnumValue = errors.New("无效的枚举值")

	// ErrUnknownField 表示按名称赋值时找不到对应字段
	ErrUnknownField = errors.New("未知字段")

	// ErrExportIO 表示导出文件写入失败
	ErrExportIO = errors.New("导出文件写入失败")

	// ErrSchemaExport 表示 JSON Schema 文档生成失败
	ErrSchemaExport = errors.New("JSON Schema 生成失败")
)
