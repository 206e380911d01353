package contract

import "encoding/json"

// Marshal 将 schema 实例序列化为 JSON，枚举字段输出其字符串值
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return data, nil
}

// MarshalIndent 同 Marshal，输出带缩进的 JSON
func MarshalIndent(v any, indent string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return data, nil
}
