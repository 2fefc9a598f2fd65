//go:build unix

package main

import (
	"syscall"
	"testing"
	"time"
)

type recordingTerminal struct {
	exited chan struct{}
}

func (r *recordingTerminal) Clear()          {}
func (r *recordingTerminal) Width() int      { return 0 }
func (r *recordingTerminal) EnterAltScreen() {}
func (r *recordingTerminal) ExitAltScreen()  { close(r.exited) }

func TestHandleInterrupt(t *testing.T) {
	term := &recordingTerminal{exited: make(chan struct{})}
	codes := make(chan int, 1)

	stop := handleInterrupt(term, true, func(code int) { codes <- code })
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case code := <-codes:
		if code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt handler did not run")
	}

	select {
	case <-term.exited:
	default:
		t.Error("alternate screen not exited before exit")
	}
}
