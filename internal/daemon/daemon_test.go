package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unusedPort 上没有服务监听，健康检查总是失败
const unusedPort = "1"

func TestNewPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	d := New(dir, unusedPort)

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "fastjson-server.pid"), d.PIDFile())
	assert.Equal(t, filepath.Join(dir, "fastjson-server.log"), d.LogFile())
}

func TestPIDLifecycle(t *testing.T) {
	d := New(t.TempDir(), unusedPort)
	assert.False(t, d.IsRunning())
	assert.Contains(t, d.Status(), "未在运行")

	require.NoError(t, d.writePID())
	pid, err := d.readPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	// 当前测试进程存活，PID 文件回退检查成立
	assert.True(t, d.IsRunning())
	assert.Contains(t, d.Status(), "正在运行")

	d.Cleanup()
	assert.NoFileExists(t, d.PIDFile())
	assert.False(t, d.IsRunning())
}

func TestStopWhenNotRunning(t *testing.T) {
	d := New(t.TempDir(), unusedPort)
	assert.Error(t, d.Stop())
}
