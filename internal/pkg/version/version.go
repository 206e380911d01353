package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// SchemaVersion 是数据契约的版本，随导出的 JSON Schema 一起发布。
// 字段或约束发生不兼容变化时递增主版本号。
const SchemaVersion = "1.0.0"

// 这些变量将在构建时通过 ldflags 注入
var (
	Version   = "dev"             // 导出工具版本号，如 v1.0.0
	Commit    = "unknown"         // Git commit hash
	Date      = "unknown"         // 构建时间
	GoVersion = runtime.Version() // Go 版本
)

const ModulePath = "github.com/anzhiyu-c/imalink-schemas"

// GetVersion 返回导出工具的版本号
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown (no build info)"
	}

	// 作为依赖被其他模块引入时，取依赖中记录的版本
	if buildInfo.Main.Path != ModulePath {
		for _, dep := range buildInfo.Deps {
			if dep.Path == ModulePath {
				return dep.Version
			}
		}
		return "dev"
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return "dev"
}

// GetBuildInfo 返回详细的构建信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:       GetVersion(),
		SchemaVersion: SchemaVersion,
		Commit:        vcsSetting("vcs.revision", Commit),
		Date:          vcsSetting("vcs.time", Date),
		GoVersion:     GoVersion,
	}
}

// vcsSetting 优先使用 ldflags 注入的值，否则从构建信息中读取
func vcsSetting(key, injected string) string {
	if injected != "unknown" && injected != "" {
		return injected
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key != key {
			continue
		}
		switch key {
		case "vcs.revision":
			if len(setting.Value) > 7 {
				return setting.Value[:7]
			}
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				return t.Format("2006-01-02 15:04:05")
			}
		}
		return setting.Value
	}
	return "unknown"
}

// GetVersionString 返回完整的版本字符串
func GetVersionString() string {
	info := GetBuildInfo()

	parts := []string{info.Version, fmt.Sprintf("schema %s", info.SchemaVersion)}
	if info.Commit != "unknown" {
		parts = append(parts, fmt.Sprintf("commit %s", info.Commit))
	}
	if info.Date != "unknown" {
		parts = append(parts, fmt.Sprintf("built at %s", info.Date))
	}
	return strings.Join(parts, ", ")
}

// BuildInfo 包含构建信息
type BuildInfo struct {
	Version       string `json:"version"`
	SchemaVersion string `json:"schema_version"`
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	GoVersion     string `json:"go_version"`
}
