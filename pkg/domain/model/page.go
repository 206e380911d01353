/*
 * @Description: 通用分页响应
 * @Author: 安知鱼
 * @Date: 2026-09-07 09:31:26
 * @LastEditTime: 2026-09-17 18:02:14
 * @LastEditors: 安知鱼
 */
package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
)

// PaginatedResponse 是所有列表接口共用的分页信封
type PaginatedResponse[T any] struct {
	Items    []T   `json:"items" description:"Items on the current page"`
	Total    int64 `json:"total" validate:"min=0" description:"Total number of items"`
	Page     int   `json:"page" validate:"min=1" description:"Current page number (1-based)"`
	PageSize int   `json:"page_size" validate:"min=0" description:"Items per page"`
	Pages    *int  `json:"pages" description:"Total number of pages"`
}

// NewPaginatedResponse 创建分页响应，pageSize 大于 0 时自动计算总页数
func NewPaginatedResponse[T any](items []T, total int64, page, pageSize int) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	p := &PaginatedResponse[T]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if pageSize > 0 {
		pages := p.TotalPages()
		p.Pages = &pages
	}
	return p
}

// TotalPages 按 total 与 page_size 计算总页数，page_size 为 0 时返回 0
func (p *PaginatedResponse[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	pages := p.Total / size
	if p.Total%size != 0 {
		pages++
	}
	return int(pages)
}

// Validate 校验字段规则，并在提供了 pages 时检查它与 total、page_size 一致，
// 两类错误一并返回
func (p *PaginatedResponse[T]) Validate() error {
	var ve *contract.ValidationError
	if err := contract.Validate(p); err != nil && !errors.As(err, &ve) {
		return err
	}
	if p.Pages != nil && p.PageSize > 0 {
		if expected := p.TotalPages(); *p.Pages != expected {
			if ve == nil {
				ve = &contract.ValidationError{Schema: "PaginatedResponse"}
			}
			ve.Fields = append(ve.Fields, contract.FieldError{
				Field:   "pages",
				Rule:    "eq",
				Param:   strconv.Itoa(expected),
				Value:   *p.Pages,
				Message: fmt.Sprintf("必须等于 %d", expected),
			})
		}
	}
	if ve == nil {
		return nil
	}
	return ve
}
