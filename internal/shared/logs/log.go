package logs

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"MedievalKingdoms/internal/shared/serverconfig"
)

var logger *zap.Logger = zap.NewNop()

func Init(appName string, cfg serverconfig.LogConfig) error {
	// 日志级别：默认 info；cfg.Level 支持 "debug/info/warn/error/..."（大小写不敏感）
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	// AtomicLevel 方便未来动态调整日志级别
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	// console 和 file 共用的编码器配置
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// 控制台：彩色等级，便于本地阅读
	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleCfg)

	// 文件：JSON 结构化输出，不带颜色
	fileCfg := encoderCfg
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(fileCfg)

	// 文件输出带切割；未配置路径则丢弃文件输出
	var fileWriter io.Writer
	if cfg.FileDir != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.FileDir,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
	} else {
		fileWriter = io.Discard
	}

	consoleSyncer := zapcore.Lock(os.Stderr)
	fileSyncer := zapcore.AddSync(fileWriter)
	multiSyncer := zapcore.NewMultiWriteSyncer(consoleSyncer, fileSyncer)

	// 写文件时分成两路 core，避免把 ANSI 颜色写进日志文件
	core := zapcore.NewCore(consoleEncoder, multiSyncer, atomicLevel)
	if cfg.FileDir != "" {
		core = zapcore.NewTee(
			zapcore.NewCore(consoleEncoder, consoleSyncer, atomicLevel),
			zapcore.NewCore(jsonEncoder, fileSyncer, atomicLevel),
		)
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	l := zap.New(core, opts...).Named(appName)

	if l != nil {
		_ = l.Sync()
	}
	logger = l
	return nil
}

// Logger 返回底层 zap.Logger（用于构建 logx 适配器等）。
func Logger() *zap.Logger {
	return logger
}

// 常用日志级别的便捷封装；logger 未初始化时为 no-op，避免空指针。

func Debug(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, fields...)
	}
}

func Fatal(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Fatal(msg, fields...)
	}
}
