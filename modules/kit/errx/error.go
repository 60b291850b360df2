package errx

import (
	"errors"
	"fmt"
	"runtime"
)

// Code 表示错误码（对外语义的稳定标识）。
type Code string

type class uint8

const (
	classBiz class = iota
	classSys
)

// Reason 是错误原因的最小接口，只暴露 reason code。
type Reason interface {
	ReasonCode() string
}

// Error 是通用错误模型：
// - code/msg：对外语义
// - data：业务上下文（外部只读，内部写时复制）
// - cause：原始错误链（仅用于溯源，不参与对外语义）
// - stack：只在系统类错误第一次 WithCause 处捕获一次
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
	class class
}

func NewBiz(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, class: classBiz}
}

func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, class: classSys}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.code)
	case e.msg == "":
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
}

// Unwrap 让 errors.Is / errors.As 可以沿着 cause 链溯源。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 仅按错误码判断语义是否相同，忽略 msg/data/cause。
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string {
	return string(e.Code())
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Data 返回 data 的拷贝，避免外部修改污染错误上下文。
func (e *Error) Data() map[string]any {
	if e == nil || e.data == nil {
		return nil
	}
	return cloneMap(e.data)
}

// Reason 返回约定的字符串原因码（存储在 data.reason）。
func (e *Error) Reason() string {
	if e == nil || e.data == nil {
		return ""
	}
	s, _ := e.data["reason"].(string)
	return s
}

// Stack 返回系统类错误首次被转换那一刻的调用栈。
func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	out := make([]uintptr, len(e.stack))
	copy(out, e.stack)
	return out
}

func (e *Error) clone() *Error {
	next := &Error{
		code:  e.code,
		msg:   e.msg,
		data:  cloneMap(e.data),
		cause: e.cause,
		class: e.class,
	}
	if len(e.stack) != 0 {
		next.stack = make([]uintptr, len(e.stack))
		copy(next.stack, e.stack)
	}
	return next
}

func (e *Error) WithData(key string, value any) *Error {
	next := e.clone()
	if next.data == nil {
		next.data = make(map[string]any, 1)
	}
	next.data[key] = value
	return next
}

// WithReason 是 WithData("reason", reason.ReasonCode()) 的语义化快捷方法。
func (e *Error) WithReason(reason Reason) *Error {
	if reason == nil {
		return e.WithData("reason", "")
	}
	return e.WithData("reason", reason.ReasonCode())
}

func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	// 只在系统类错误首次挂 cause 时捕获一次；下层已有栈则不重复捕获。
	if next.class == classSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
