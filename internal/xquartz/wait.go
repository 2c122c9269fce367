package xquartz

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/2dir-insight/xbridge/internal/x11"
)

// WaitReady blocks until the X server looks ready to accept clients, or
// until wait elapses. Readiness is inferred from a server socket
// appearing under socketDir; the fixed wait is the upper bound for
// hosts where the socket directory cannot be observed.
func WaitReady(ctx context.Context, socketDir string, wait time.Duration) {
	if socketDir == "" {
		socketDir = x11.SocketDir
	}

	// Already up from a previous session.
	if sockets, err := x11.Sockets(socketDir); err == nil && len(sockets) > 0 {
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err := watcher.Add(socketDir); err != nil {
			slog.Debug("cannot watch socket dir, falling back to fixed delay",
				"dir", socketDir, "error", err)
			watcher = nil
		}
	} else {
		slog.Debug("fsnotify unavailable, falling back to fixed delay", "error", err)
		watcher = nil
	}

	if watcher == nil {
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), "X") {
				slog.Debug("x server socket appeared", "socket", event.Name)
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("socket watcher error", "error", err)

		case <-timer.C:
			return

		case <-ctx.Done():
			return
		}
	}
}
