/*
 * @Description: 统一响应格式，以及契约错误到 HTTP 状态码的映射
 * @Author: 安知鱼
 * @Date: 2026-09-11 10:02:45
 * @LastEditTime: 2026-09-18 20:14:33
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
	"github.com/anzhiyu-c/imalink-schemas/pkg/domain/model"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	SuccessWithStatus(c, http.StatusOK, data, message)
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码，例如 201 Created
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Page 返回分页数据，返回前校验分页信息是否自洽
func Page[T any](c *gin.Context, page *model.PaginatedResponse[T], message string) {
	if err := page.Validate(); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	Success(c, page, message)
}

// FailWithError 根据错误类型选择状态码：
// 校验失败为 422 并附带逐字段的错误列表，JSON 格式错误为 400，其余为 500
func FailWithError(c *gin.Context, err error) {
	var ve *contract.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, Response{
			Code:    http.StatusUnprocessableEntity,
			Message: constant.ErrValidation.Error(),
			Data:    ve.Fields,
		})
	case errors.Is(err, constant.ErrSerialization):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, constant.ErrValidation), errors.Is(err, constant.ErrInvalidEnumValue):
		Fail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
