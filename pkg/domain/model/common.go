/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-03 17:41:31
 * @LastEditTime: 2026-09-16 17:41:35
 * @LastEditors: 安知鱼
 */
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap 表示结构不固定的键值文档，例如 EXIF 数据、存储信息和用户修正数据。
// 契约层不枚举其子字段，只原样透传。
// 实现了 driver.Valuer 和 sql.Scanner 接口，持久化层可以直接存取。
type JSONMap map[string]interface{}

// Value 实现了 driver.Valuer 接口，用于将 JSONMap 写入数据库。
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现了 sql.Scanner 接口，用于从数据库读取数据到 JSONMap。
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var byteSlice []byte
	switch v := value.(type) {
	case []byte:
		byteSlice = v
	case string:
		byteSlice = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONMap scan: %T", value)
	}
	return json.Unmarshal(byteSlice, j)
}

// Clone 返回一层浅拷贝，nil 保持为 nil
func (j JSONMap) Clone() JSONMap {
	if j == nil {
		return nil
	}
	out := make(JSONMap, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}
