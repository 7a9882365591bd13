package build_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/adshield/internal/domain/build"
)

func TestInfo_Resolved(t *testing.T) {
	r := build.Info{}.Resolved()
	assert.Equal(t, "dev", r.Version)
	assert.Equal(t, "unknown", r.Commit)
	assert.Equal(t, "unknown", r.BuildDate)
	assert.Equal(t, runtime.Version(), r.GoVersion)

	set := build.Info{Version: "v1.0.0", Commit: "abc", BuildDate: "2026-01-02", GoVersion: "go1.24"}
	assert.Equal(t, set, set.Resolved())
}

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info build.Info
		want string
	}{
		{name: "empty", info: build.Info{}, want: "dev"},
		{name: "unknown commit", info: build.Info{Version: "v0.3.1", Commit: "unknown"}, want: "v0.3.1"},
		{name: "full sha", info: build.Info{Version: "v0.3.1", Commit: "1a2b3c4d5e6f"}, want: "v0.3.1 (1a2b3c4)"},
		{name: "short sha", info: build.Info{Version: "v0.3.1", Commit: "1a2b"}, want: "v0.3.1 (1a2b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}
