package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu    sync.Mutex
	crashReset func()
	crashExit  = os.Exit
)

// SetCrashReset registers the function that restores the terminal before a crash report is printed
// The binary registers screen.Fini; tests and headless runs leave it unset
func SetCrashReset(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashReset = fn
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	reset := crashReset
	crashMu.Unlock()

	if reset != nil {
		reset()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTOWER-JUMPER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so the terminal is restored on crash
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
