/*
 * @Description: JSON Schema 导出服务
 * @Author: 安知鱼
 * @Date: 2026-09-10 09:47:51
 * @LastEditTime: 2026-09-19 18:20:36
 * @LastEditors: 安知鱼
 */
package schema_export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/anzhiyu-c/imalink-schemas/internal/pkg/version"
	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

const (
	DraftSchemaURL     = "http://json-schema.org/draft-04/schema#"
	DefaultTitle       = "ImaLink Schemas"
	DefaultDescription = "Shared data schemas for ImaLink ecosystem"
	DefaultIndent      = 2

	// SchemaVersionExtension 是文档中记录契约版本的扩展字段
	SchemaVersionExtension = "x-schema-version"
)

// Entry 是导出清单中的一项，Value 为 schema 结构体的零值或指针
type Entry struct {
	Name  string
	Value any
}

// Result 描述一次导出的结果
type Result struct {
	Path  string   `json:"path"`  // 输出文件的绝对路径
	Count int      `json:"count"` // 导出的 schema 数量
	Names []string `json:"names"` // 按清单顺序排列的 schema 名称
}

// ExportError 表示导出文件写入失败，已存在的目标文件保持不变
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s '%s': %v", constant.ErrExportIO.Error(), e.Path, e.Err)
}

func (e *ExportError) Unwrap() []error {
	return []error{constant.ErrExportIO, e.Err}
}

// Options 导出服务选项，Title 与 Description 为空时使用默认值
type Options struct {
	Title       string
	Description string
	Indent      int // 缩进空格数，0 表示紧凑输出，负数使用默认值
	Logger      *slog.Logger
}

// Service JSON Schema 导出服务接口
type Service interface {
	// Build 根据清单生成完整的 JSON Schema 文档
	Build(entries []Entry) (*spec.Schema, error)
	// Export 生成文档并原子地写入 outputPath
	Export(ctx context.Context, entries []Entry, outputPath string) (*Result, error)
}

type service struct {
	opts   Options
	logger *slog.Logger
}

// NewService 创建导出服务
func NewService(opts Options) Service {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Description == "" {
		opts.Description = DefaultDescription
	}
	if opts.Indent < 0 {
		opts.Indent = DefaultIndent
	}
	logger := opts.Logger
	if logger == nil {
		slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		logger = slog.New(slogHandler)
	}
	return &service{
		opts:   opts,
		logger: logger.With("system", "schema_export"),
	}
}

func (s *service) Build(entries []Entry) (*spec.Schema, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: 导出清单为空", constant.ErrSchemaExport)
	}

	g := newGenerator()
	types := make([]reflect.Type, len(entries))
	for i, entry := range entries {
		t := reflect.TypeOf(entry.Value)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %q 不是结构体类型", constant.ErrSchemaExport, entry.Name)
		}
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("%w: %s 缺少名称", constant.ErrSchemaExport, t)
		}
		if err := g.register(entry.Name, t); err != nil {
			return nil, err
		}
		types[i] = t
	}
	for _, t := range types {
		if _, err := g.define(t); err != nil {
			return nil, err
		}
	}

	doc := new(spec.Schema).WithTitle(s.opts.Title).WithDescription(s.opts.Description)
	doc.Schema = spec.SchemaURL(DraftSchemaURL)
	doc.Definitions = g.defs
	doc.AddExtension(SchemaVersionExtension, version.SchemaVersion)
	return doc, nil
}

func (s *service) Export(ctx context.Context, entries []Entry, outputPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 先完整生成文档，生成失败时不触碰目标文件
	doc, err := s.Build(entries)
	if err != nil {
		return nil, err
	}
	var data []byte
	if s.opts.Indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", s.opts.Indent))
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constant.ErrSchemaExport, err)
	}
	data = append(data, '\n')

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, &ExportError{Path: outputPath, Err: err}
	}
	if err := writeFileAtomic(absPath, data); err != nil {
		s.logger.Error("写入 JSON Schema 失败", "path", absPath, slog.Any("error", err))
		return nil, &ExportError{Path: absPath, Err: err}
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	s.logger.Info("JSON Schema 导出完成",
		"path", absPath,
		"count", len(names),
		"definitions", len(doc.Definitions),
		"schema_version", version.SchemaVersion,
	)
	return &Result{Path: absPath, Count: len(names), Names: names}, nil
}

// writeFileAtomic 先写入同目录下的临时文件，再重命名覆盖目标文件
func writeFileAtomic(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("无法创建临时文件: %w", err)
	}
	tempFileName := tempFile.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tempFileName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tempFileName, 0644); err != nil {
		return fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err := os.Rename(tempFileName, path); err != nil {
		return fmt.Errorf("重命名临时文件失败: %w", err)
	}
	committed = true
	return nil
}
