/*
 * @Description: gin 请求绑定，复用数据契约的校验规则
 * @Author: 安知鱼
 * @Date: 2026-09-11 11:26:04
 * @LastEditTime: 2026-09-18 20:30:52
 * @LastEditors: 安知鱼
 */
package bind

import (
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
	"github.com/anzhiyu-c/imalink-schemas/pkg/response"
)

// Validator 实现了 gin 的 binding.StructValidator，
// 使 ShouldBindJSON 等方法使用与契约相同的校验器和错误格式
type Validator struct{}

var _ binding.StructValidator = Validator{}

// ValidateStruct 校验结构体、结构体指针或它们组成的切片
func (v Validator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	switch value.Kind() {
	case reflect.Struct:
		return contract.Validate(obj)
	case reflect.Slice, reflect.Array:
		for i := range value.Len() {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Engine 返回底层的 validator 实例
func (Validator) Engine() any {
	return contract.Engine()
}

// Install 将 gin 的全局校验器替换为契约校验器，应在注册路由前调用
func Install() {
	binding.Validator = Validator{}
}

// BindJSON 读取请求体并按契约构造 T：应用默认值、区分缺失与显式 null、返回全部字段错误
func BindJSON[T any](c *gin.Context) (*T, error) {
	data, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	return contract.Parse[T](data)
}

// JSON 同 BindJSON，失败时直接写入错误响应并中止请求
func JSON[T any](c *gin.Context) (*T, bool) {
	v, err := BindJSON[T](c)
	if err != nil {
		response.FailWithError(c, err)
		c.Abort()
		return nil, false
	}
	return v, true
}
