package logger

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncConsoleHook mirrors log entries to stdout without blocking the caller.
// Entries are dropped when the buffer is full; the file writer remains the
// durable sink.
type AsyncConsoleHook struct {
	entries chan string
	quit    chan struct{}
	wg      sync.WaitGroup
}

func NewAsyncConsoleHook(bufferSize int) *AsyncConsoleHook {
	hook := &AsyncConsoleHook{
		entries: make(chan string, bufferSize),
		quit:    make(chan struct{}),
	}

	hook.wg.Add(1)
	go hook.run()

	return hook
}

func (h *AsyncConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}

	select {
	case h.entries <- line:
	default:
	}

	return nil
}

func (h *AsyncConsoleHook) run() {
	defer h.wg.Done()

	for {
		select {
		case line := <-h.entries:
			fmt.Print(line)

		case <-h.quit:
			h.drain()
			return
		}
	}
}

// drain flushes whatever is still buffered at shutdown.
func (h *AsyncConsoleHook) drain() {
	for {
		select {
		case line := <-h.entries:
			fmt.Print(line)
		default:
			return
		}
	}
}

func (h *AsyncConsoleHook) Close() {
	close(h.quit)
	h.wg.Wait()
}

func (h *AsyncConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
