package core

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/MohinVinayak/Code-Dog/terminal"
)

// HandleCrash restores the terminal from a panic, prints the stack, and
// exits. The reset must come first: a raw-mode terminal eats the trace.
func HandleCrash(r any) {
	if r == nil {
		return
	}

	terminal.EmergencyReset(os.Stdout)
	os.Stdout.Sync()

	// \r\n throughout: the terminal may still translate line endings raw
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mpanic: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
	os.Stderr.Sync()

	SyncLogging()
	os.Exit(1)
}

// Go launches fn on a goroutine with panic recovery. Every goroutine in
// this program starts here, so a crash anywhere still resets the terminal.
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
