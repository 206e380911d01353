/*
 * @Description: 源文件（ImageFile）数据契约
 * @Author: 安知鱼
 * @Date: 2026-09-06 10:22:18
 * @LastEditTime: 2026-09-17 15:08:44
 * @LastEditors: 安知鱼
 */
package model

import (
	"time"

	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
)

// ImageFileCreate 是创建 ImageFile 记录的输入结构。
// 描述属于某张照片的一个物理源文件（JPEG、RAW 等）。
type ImageFileCreate struct {
	Filename         string     `json:"filename" validate:"required" description:"Original filename"`
	FileSize         int64      `json:"file_size" validate:"min=0" description:"File size in bytes"`
	ImportedTime     *time.Time `json:"imported_time" description:"When the file was imported"`
	ImportedInfo     JSONMap    `json:"imported_info" description:"Additional import metadata (source path, user, etc.)"`
	LocalStorageInfo JSONMap    `json:"local_storage_info" description:"Local filesystem storage details"`
	CloudStorageInfo JSONMap    `json:"cloud_storage_info" description:"Cloud storage details (S3, etc.)"`
}

// SetFilename 修改文件名并重新校验
func (f *ImageFileCreate) SetFilename(name string) error {
	return contract.Assign(f, "filename", name)
}

// SetFileSize 修改文件大小并重新校验
func (f *ImageFileCreate) SetFileSize(size int64) error {
	return contract.Assign(f, "file_size", size)
}

// ImageFileResponse 是 ImageFile 的响应结构
type ImageFileResponse struct {
	ID               int64      `json:"id"`
	Filename         string     `json:"filename"`
	FileSize         int64      `json:"file_size"`
	PhotoID          *int64     `json:"photo_id"`
	ImportedTime     *time.Time `json:"imported_time"`
	ImportedInfo     JSONMap    `json:"imported_info"`
	LocalStorageInfo JSONMap    `json:"local_storage_info"`
	CloudStorageInfo JSONMap    `json:"cloud_storage_info"`
}

// NewImageFileCreate 从 map、结构体或 JSON 构造 ImageFileCreate
func NewImageFileCreate(input any) (*ImageFileCreate, error) {
	return contract.Build[ImageFileCreate](input)
}

// NewImageFileResponse 通常由持久化模型直接构造
func NewImageFileResponse(input any) (*ImageFileResponse, error) {
	return contract.Build[ImageFileResponse](input)
}
