package version

import (
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	s := GetVersionString()
	if !strings.Contains(s, "schema "+SchemaVersion) {
		t.Errorf("版本字符串应包含契约版本: %q", s)
	}
	if info := GetBuildInfo(); info.SchemaVersion != SchemaVersion || info.Version == "" {
		t.Errorf("BuildInfo = %+v", info)
	}
}

func TestInjectedValues(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-09-18 10:00:00"
	want := "v1.2.3, schema " + SchemaVersion + ", commit abc1234, built at 2026-09-18 10:00:00"
	if got := GetVersionString(); got != want {
		t.Errorf("GetVersionString() = %q, want %q", got, want)
	}
}
