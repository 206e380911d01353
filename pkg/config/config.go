/*
 * @Description: 导出工具配置管理，ini 文件 + 环境变量覆盖
 * @Author: 安知鱼
 * @Date: 2026-09-08 15:31:02
 * @LastEditTime: 2026-09-18 10:40:17
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"

	"github.com/anzhiyu-c/imalink-schemas/internal/configdef"
	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
)

// EnvPrefix 是覆盖配置的环境变量前缀，例如 IMALINK_EXPORT_OUTPUT
const EnvPrefix = "IMALINK"

type Config struct {
	vp *viper.Viper
}

// NewConfig 依次加载内置默认值、ini 文件和环境变量，后者覆盖前者。
// filePath 为空或文件不存在时只使用默认值和环境变量。
func NewConfig(filePath string) (*Config, error) {
	vp := viper.New()

	// --- 步骤 1: 内置默认值 ---
	for _, def := range configdef.AllSettings {
		vp.SetDefault(def.Key.String(), def.Value)
	}

	// --- 步骤 2: 使用 go-ini 从文件加载配置 ---
	if filePath != "" {
		iniCfg, err := ini.Load(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
			}
			log.Printf("提示: 未找到 %s，将使用默认配置。", filePath)
		} else {
			for _, section := range iniCfg.Sections() {
				for _, key := range section.Keys() {
					viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
					if section.Name() == ini.DefaultSection {
						viperKey = key.Name()
					}
					vp.Set(viperKey, key.Value())
				}
			}
			log.Printf("从 %s 文件加载了配置。", filePath)
		}
	}

	// --- 步骤 3: 环境变量覆盖已知的配置键 ---
	envReplacer := strings.NewReplacer(".", "_")
	for _, def := range configdef.AllSettings {
		key := def.Key.String()
		envVarName := fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key constant.SettingKey) string {
	return c.vp.GetString(key.String())
}

func (c *Config) GetInt(key constant.SettingKey) int {
	return c.vp.GetInt(key.String())
}

// WriteDefault 根据配置项定义生成一份带注释的默认配置文件
func WriteDefault(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	cfg := ini.Empty()
	for _, def := range configdef.AllSettings {
		sectionName, keyName, ok := strings.Cut(def.Key.String(), ".")
		if !ok {
			sectionName, keyName = ini.DefaultSection, sectionName
		}
		key, err := cfg.Section(sectionName).NewKey(keyName, def.Value)
		if err != nil {
			return fmt.Errorf("生成配置项 %s 失败: %w", def.Key, err)
		}
		key.Comment = def.Comment
	}

	if err := cfg.SaveTo(filePath); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
