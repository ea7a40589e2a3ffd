package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogEntry is one record of a gateway specific log file.
type LogEntry struct {
	TransactionID string                 `json:"transaction_id,omitempty"`
	OrderID       uint                   `json:"order_id,omitempty"`
	Amount        int64                  `json:"amount,omitempty"`
	Status        string                 `json:"status,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Duration      time.Duration          `json:"duration_ms,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

func (e LogEntry) fields() []zap.Field {
	fields := make([]zap.Field, 0, 7)
	if e.TransactionID != "" {
		fields = append(fields, zap.String("transaction_id", e.TransactionID))
	}
	if e.OrderID != 0 {
		fields = append(fields, zap.Uint("order_id", e.OrderID))
	}
	if e.Amount != 0 {
		fields = append(fields, zap.Int64("amount", e.Amount))
	}
	if e.Status != "" {
		fields = append(fields, zap.String("status", e.Status))
	}
	if e.Error != "" {
		fields = append(fields, zap.String("error", e.Error))
	}
	if e.Duration != 0 {
		fields = append(fields, zap.Duration("duration_ms", e.Duration))
	}
	if len(e.Data) > 0 {
		fields = append(fields, zap.Any("data", e.Data))
	}
	return fields
}

// LoggerManager keeps one logger per payment gateway so that each gateway's
// API traffic ends up in its own file.
type LoggerManager struct {
	loggers  map[string]*zap.Logger
	fallback *zap.Logger
	mu       sync.RWMutex
}

var LogManager = &LoggerManager{
	loggers:  make(map[string]*zap.Logger),
	fallback: zap.NewNop(),
}

const PAYMENT_ADMIN = "admin"

// InitPaymentLoggers opens a log file for every PayEx gateway. fallback
// receives entries for unknown gateways.
func InitPaymentLoggers(fallback *zap.Logger) error {
	LogManager.mu.Lock()
	LogManager.fallback = fallback
	LogManager.mu.Unlock()

	for _, method := range append(Gateways(), PAYMENT_ADMIN) {
		if err := LogManager.CreateLogger(method); err != nil {
			return fmt.Errorf("failed to create logger for %s: %w", method, err)
		}
	}
	return nil
}

// CreateLogger opens the weekly file for paymentType.
func (plm *LoggerManager) CreateLogger(paymentType string) error {
	logDir := filepath.Join(LogsBaseDir(), "payments")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logFilePath := filepath.Join(logDir, weeklyLogName("payex", paymentType, time.Now()))
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(logFile), zap.InfoLevel)
	logger := zap.New(core).With(zap.String("payment_type", paymentType))

	plm.mu.Lock()
	plm.loggers[paymentType] = logger
	plm.mu.Unlock()
	return nil
}

// Logger returns the logger for paymentType, or the fallback logger.
func (plm *LoggerManager) Logger(paymentType string) *zap.Logger {
	plm.mu.RLock()
	defer plm.mu.RUnlock()
	if logger, ok := plm.loggers[paymentType]; ok {
		return logger
	}
	return plm.fallback.With(zap.String("payment_type", paymentType))
}

// LogPayment writes entry at level. DEBUG entries are dropped.
func (plm *LoggerManager) LogPayment(paymentType, level, message string, entry LogEntry) {
	logger := plm.Logger(paymentType)
	switch level {
	case "ERROR":
		logger.Error(message, entry.fields()...)
	case "WARN":
		logger.Warn(message, entry.fields()...)
	case "INFO":
		logger.Info(message, entry.fields()...)
	}
}

// Close flushes every gateway logger.
func (plm *LoggerManager) Close() {
	plm.mu.Lock()
	defer plm.mu.Unlock()
	for _, logger := range plm.loggers {
		_ = logger.Sync()
	}
}
