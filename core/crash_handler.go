package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

var (
	crashMu     sync.Mutex
	resetHook   func()
	crashLogger = zap.NewNop()

	// exit is replaced in tests
	exit = os.Exit
)

// SetResetHook registers the terminal restore run before a crash report is printed
// The screen owner passes its Fini so the report lands on a sane terminal
func SetResetHook(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	resetHook = fn
}

// SetCrashLogger registers the logger that records crashes
func SetCrashLogger(l *zap.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	crashLogger = l
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hook, logger := resetHook, crashLogger
	crashMu.Unlock()

	stack := debug.Stack()
	logger.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
	_ = logger.Sync()

	// Restore terminal to sane state before writing to it
	if hook != nil {
		hook()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mPRIZE-WHEEL CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
