package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Version string = "0.1.0"

var logger *zap.Logger //建立一个公共的日志指针

func Init(flag bool) error {
	// 基础配置（沿用 dev/prod 的区别）
	var base zap.Config
	if flag {
		base = zap.NewProductionConfig()
	} else {
		base = zap.NewDevelopmentConfig()
		base.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	// ——时间与级别的统一格式——
	enc := base.EncoderConfig
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05") // 去掉 .毫秒 与 +0800
	enc.EncodeLevel = zapcore.CapitalLevelEncoder                       // 无颜色

	// 普通日志（< ERROR）：不输出 caller
	encNoCaller := enc
	encNoCaller.CallerKey = ""

	// 错误日志（>= ERROR）：输出 caller
	encWithCaller := enc
	encWithCaller.CallerKey = "caller"

	var (
		encA zapcore.Encoder
		encB zapcore.Encoder
	)
	if flag {
		encA = zapcore.NewJSONEncoder(encNoCaller)
		encB = zapcore.NewJSONEncoder(encWithCaller)
	} else {
		encA = zapcore.NewConsoleEncoder(encNoCaller)
		encB = zapcore.NewConsoleEncoder(encWithCaller)
	}

	ws := zapcore.Lock(zapcore.AddSync(os.Stdout))

	// < ERROR 的日志（DEBUG/INFO/WARN）→ 不带 caller
	coreNoCaller := zapcore.NewCore(
		encA, ws,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl < zapcore.ErrorLevel }),
	)

	// ≥ ERROR 的日志（ERROR/DPANIC/PANIC/FATAL）→ 带 caller
	coreWithCaller := zapcore.NewCore(
		encB, ws,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= zapcore.ErrorLevel }),
	)

	l := zap.New(
		zapcore.NewTee(coreNoCaller, coreWithCaller),
		zap.AddCaller(), // 计算 caller，但只有 encWithCaller 才会编码输出
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel), // 仅错误及以上打印堆栈
	)

	logger = l
	return nil
}

// 延迟初始化和防御性编程-防止其未初始化
func L() *zap.Logger {
	if logger == nil {
		_ = Init(false) // 如果发现还是 nil，就自动用开发配置初始化
	}
	return logger
}
func Sync() { _ = L().Sync() } //确保所有日志都刷新到磁盘
