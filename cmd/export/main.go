/*
 * @Description: 导出 JSON Schema，供 quicktype 生成 Rust / TypeScript 类型
 * @Author: 安知鱼
 * @Date: 2026-09-10 14:06:19
 * @LastEditTime: 2026-09-19 18:31:47
 * @LastEditors: 安知鱼
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anzhiyu-c/imalink-schemas/internal/pkg/version"
	"github.com/anzhiyu-c/imalink-schemas/pkg/config"
	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
	"github.com/anzhiyu-c/imalink-schemas/pkg/service/schema_export"
)

func main() {
	var (
		outputPath  string
		configPath  string
		writeConfig string
		showVersion bool
	)
	flag.StringVar(&outputPath, "o", "", "输出文件路径（默认使用配置中的 Export.Output）")
	flag.StringVar(&configPath, "c", "imalink.ini", "配置文件路径，文件不存在时使用默认配置")
	flag.StringVar(&writeConfig, "write-config", "", "生成默认配置文件到指定路径后退出")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetVersionString())
		return
	}

	if writeConfig != "" {
		if err := config.WriteDefault(writeConfig); err != nil {
			log.Fatalf("生成默认配置文件失败: %v", err)
		}
		log.Printf("✅ 已创建默认配置文件: %s", writeConfig)
		return
	}

	cfg, err := config.NewConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if outputPath == "" {
		outputPath = cfg.GetString(constant.KeyExportOutput)
	}

	svc := schema_export.NewService(schema_export.Options{
		Title:       cfg.GetString(constant.KeyExportTitle),
		Description: cfg.GetString(constant.KeyExportDescription),
		Indent:      cfg.GetInt(constant.KeyExportIndent),
	})

	result, err := svc.Export(context.Background(), schema_export.Manifest, outputPath)
	if err != nil {
		log.Printf("导出 JSON Schema 失败: %v", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Exported schemas to %s\n", result.Path)
	fmt.Printf("📦 %d schemas exported (schema version %s)\n", result.Count, version.SchemaVersion)
	fmt.Println("\nGenerate Rust types:")
	fmt.Printf("  quicktype %s --lang rust -o schemas.rs\n", outputPath)
	fmt.Println("\nGenerate TypeScript types:")
	fmt.Printf("  quicktype %s --lang typescript -o schemas.ts\n", outputPath)
}
