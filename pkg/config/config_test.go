package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anzhiyu-c/imalink-schemas/internal/configdef"
	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

func TestNewConfig(t *testing.T) {
	t.Run("内置默认值", func(t *testing.T) {
		cfg, err := NewConfig("")
		if err != nil {
			t.Fatalf("NewConfig 失败: %v", err)
		}
		if got := cfg.GetString(constant.KeyExportOutput); got != "schemas.json" {
			t.Errorf("Export.Output = %q", got)
		}
		if got := cfg.GetInt(constant.KeyExportIndent); got != 2 {
			t.Errorf("Export.Indent = %d", got)
		}
	})

	t.Run("配置文件不存在", func(t *testing.T) {
		cfg, err := NewConfig(filepath.Join(t.TempDir(), "missing.ini"))
		if err != nil {
			t.Fatalf("文件不存在时不应失败: %v", err)
		}
		if got := cfg.GetString(constant.KeyExportTitle); got != "ImaLink Schemas" {
			t.Errorf("Export.Title = %q", got)
		}
	})

	t.Run("配置文件覆盖默认值", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "imalink.ini")
		content := "[Export]\nOutput = build/schemas.json\nIndent = 4\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := NewConfig(path)
		if err != nil {
			t.Fatalf("NewConfig 失败: %v", err)
		}
		if got := cfg.GetString(constant.KeyExportOutput); got != "build/schemas.json" {
			t.Errorf("Export.Output = %q", got)
		}
		if got := cfg.GetInt(constant.KeyExportIndent); got != 4 {
			t.Errorf("Export.Indent = %d", got)
		}
		if got := cfg.GetString(constant.KeyExportDescription); got != "Shared data schemas for ImaLink ecosystem" {
			t.Errorf("未配置的键应保留默认值，实际为 %q", got)
		}
	})

	t.Run("环境变量优先", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "imalink.ini")
		if err := os.WriteFile(path, []byte("[Export]\nTitle = From File\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("IMALINK_EXPORT_TITLE", "From Env")
		cfg, err := NewConfig(path)
		if err != nil {
			t.Fatalf("NewConfig 失败: %v", err)
		}
		if got := cfg.GetString(constant.KeyExportTitle); got != "From Env" {
			t.Errorf("Export.Title = %q", got)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "imalink.ini")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取配置文件失败: %v", err)
	}
	for _, def := range configdef.AllSettings {
		if !strings.Contains(string(data), def.Comment) {
			t.Errorf("配置文件缺少 %s 的注释", def.Key)
		}
	}

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig 失败: %v", err)
	}
	for _, def := range configdef.AllSettings {
		if got := cfg.GetString(def.Key); got != def.Value {
			t.Errorf("%s = %q, want %q", def.Key, got, def.Value)
		}
	}
}
