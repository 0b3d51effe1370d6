// Package daemon 处理 fastjson 示例服务器的后台进程管理。
//
// 它管理 PID 文件的创建/删除、进程健康检查，并提供启动、停止和检查守护进程状态的函数。
// 守护进程可以通过 CLI（start、stop、status 命令）进行控制。
package daemon

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
)

const dirName = "fiber-fastjson"

// Daemon 管理单个服务器进程的 PID 文件与日志文件
type Daemon struct {
	pidFile   string
	logFile   string
	healthURL string
	client    *http.Client
}

// New 创建守护进程管理器
// dir 为空时使用操作系统临时目录下的 fiber-fastjson 子目录；port 用于健康检查
func New(dir, port string) *Daemon {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), dirName)
	}

	// 检查目录是否存在，如果不存在则创建
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			// 如果创建失败，回退到系统临时目录
			fmt.Fprintf(os.Stderr, "警告: 创建目录 %s 失败: %v\n", dir, err)
			dir = os.TempDir()
		}
	}

	return &Daemon{
		pidFile:   filepath.Join(dir, "fastjson-server.pid"),
		logFile:   filepath.Join(dir, "fastjson-server.log"),
		healthURL: fmt.Sprintf("http://localhost:%s%s", port, constants.EndpointHealth),
		client:    &http.Client{Timeout: 2 * time.Second},
	}
}

// IsRunning 检查守护进程是否正在运行
func (d *Daemon) IsRunning() bool {
	// 首先尝试健康检查
	resp, err := d.client.Get(d.healthURL)
	if err == nil {
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}

	// 回退：检查 PID 文件
	return d.isProcessRunning()
}

// Start 记录当前进程的 PID
// enableLog 参数控制是否将输出重定向到日志文件
func (d *Daemon) Start(enableLog bool) error {
	if d.IsRunning() {
		return fmt.Errorf("服务器已在运行中")
	}

	// 清理过期的 PID 文件
	d.Cleanup()

	if err := d.writePID(); err != nil {
		return fmt.Errorf("写入 PID 文件失败: %w", err)
	}

	fmt.Println("🚀 正在启动 fastjson 服务器...")

	if enableLog {
		fmt.Printf("📝 日志文件: %s\n", d.logFile)
		if err := d.redirectOutputToLogFile(); err != nil {
			fmt.Fprintf(os.Stderr, "警告: 重定向输出到日志文件失败: %v\n", err)
		}
	}

	return nil
}

// Stop 停止正在运行的守护进程
func (d *Daemon) Stop() error {
	if !d.IsRunning() {
		return fmt.Errorf("服务器未在运行")
	}

	pid, err := d.readPID()
	if err != nil {
		return fmt.Errorf("读取 PID 失败: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("查找进程失败: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("停止进程失败: %w", err)
	}

	d.Cleanup()
	return nil
}

// Status 返回当前守护进程状态描述
func (d *Daemon) Status() string {
	if !d.IsRunning() {
		return "❌ 服务器未在运行"
	}
	pid, _ := d.readPID()
	return fmt.Sprintf("✅ 服务器正在运行（PID: %d）\n   健康检查端点: %s\n   日志文件: %s",
		pid, d.healthURL, d.logFile)
}

// Cleanup 应在关闭时调用
func (d *Daemon) Cleanup() {
	_ = os.Remove(d.pidFile) // 忽略错误
}

// PIDFile 返回 PID 文件路径
func (d *Daemon) PIDFile() string {
	return d.pidFile
}

// LogFile 返回日志文件路径
func (d *Daemon) LogFile() string {
	return d.logFile
}

// redirectOutputToLogFile 将 stdout 和 stderr 重定向到日志文件
func (d *Daemon) redirectOutputToLogFile() error {
	f, err := os.OpenFile(d.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("打开日志文件 %s 失败: %w", d.logFile, err)
	}

	os.Stdout = f
	os.Stderr = f
	return nil
}

func (d *Daemon) writePID() error {
	return os.WriteFile(d.pidFile, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func (d *Daemon) readPID() (int, error) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (d *Daemon) isProcessRunning() bool {
	pid, err := d.readPID()
	if err != nil {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// 发送信号 0 检查进程是否存在
	return process.Signal(syscall.Signal(0)) == nil
}
