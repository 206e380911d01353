/*
 * @Description: 对外提供 JSON Schema 文档与契约版本
 * @Author: 安知鱼
 * @Date: 2026-09-12 09:52:32
 * @LastEditTime: 2026-09-18 21:06:56
 * @LastEditors: 安知鱼
 */
package schema

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/imalink-schemas/internal/pkg/version"
	"github.com/anzhiyu-c/imalink-schemas/pkg/response"
	"github.com/anzhiyu-c/imalink-schemas/pkg/service/schema_export"
)

// Handler JSON Schema 处理器
type Handler struct {
	svc     schema_export.Service
	entries []schema_export.Entry
}

// NewHandler 创建处理器实例，entries 为空时使用默认清单
func NewHandler(svc schema_export.Service, entries []schema_export.Entry) *Handler {
	if len(entries) == 0 {
		entries = schema_export.Manifest
	}
	return &Handler{svc: svc, entries: entries}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/schemas", h.GetSchemas)
	r.GET("/schemas/version", h.GetVersion)
}

// GetSchemas 获取 JSON Schema 文档
// @Summary      获取 JSON Schema 文档
// @Description  返回与导出工具相同的 JSON Schema，客户端可据此生成类型
// @Tags         数据契约
// @Produce      json
// @Success      200  {object}  object  "JSON Schema 文档"
// @Router       /schemas [get]
func (h *Handler) GetSchemas(c *gin.Context) {
	doc, err := h.svc.Build(h.entries)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, doc)
}

// GetVersion 获取契约版本与构建信息
// @Summary      获取契约版本
// @Tags         数据契约
// @Produce      json
// @Success      200  {object}  object{code=int,message=string,data=object}  "版本信息"
// @Router       /schemas/version [get]
func (h *Handler) GetVersion(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
	response.Success(c, version.GetBuildInfo(), "获取版本信息成功")
}
