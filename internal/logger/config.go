package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level           string   // Log level: debug, info, warn, error
	Format          string   // Định dạng: json hoặc text
	Output          string   // Đích ghi log: file, stdout, both
	LogPath         string   // Thư mục chứa file log (tương đối so với root project)
	AppFile         string   // Tên file log ứng dụng
	AuditFile       string   // Tên file log audit
	PerformanceFile string   // Tên file log performance
	ErrorFile       string   // Tên file log lỗi
	MaxSize         int      // Kích thước tối đa mỗi file (MB)
	MaxBackups      int      // Số file cũ giữ lại
	MaxAge          int      // Số ngày giữ file cũ
	Compress        bool     // Nén file cũ
	ExcludePrefixes []string // Bỏ qua các message có prefix này
}

// DefaultConfig trả về cấu hình logging mặc định
func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:           "info",
		Format:          "text",
		Output:          "both",
		LogPath:         "logs",
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		PerformanceFile: "performance.log",
		ErrorFile:       "error.log",
		MaxSize:         100,
		MaxBackups:      5,
		MaxAge:          30,
		Compress:        true,
	}
}

// FilterHook đánh dấu các entry cần bỏ qua trước khi vào async queue.
// Entry bị filter được gắn field "_filtered"; AsyncHook sẽ bỏ qua khi ghi.
type FilterHook struct {
	excludePrefixes []string
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{excludePrefixes: cfg.ExcludePrefixes}
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị filter bằng field "_filtered"
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	for _, prefix := range h.excludePrefixes {
		if strings.HasPrefix(entry.Message, prefix) {
			entry.Data["_filtered"] = true
			return nil
		}
	}
	return nil
}
