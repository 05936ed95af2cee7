// Package audit is the append-only record of everything security-relevant
// the lock does: session lifecycle, authentication attempts, intercepted
// signals, and fatal errors. Secrets never reach this package; attempts
// carry only the boolean outcome and metadata.
package audit

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/user"
	"runtime"
)

const unknown = "unknown"

// Recorder writes structured records to the log sink. Host identity is
// resolved once at construction.
type Recorder struct {
	log  *slog.Logger
	user string
	host string
	ip   string
}

// Open creates a Recorder appending to the log file at path. The returned
// closer owns the file handle.
func Open(path string) (*Recorder, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f), f, nil
}

// New builds a Recorder over an arbitrary writer.
func New(w io.Writer) *Recorder {
	return &Recorder{
		log:  slog.New(slog.NewTextHandler(w, nil)),
		user: currentUser(),
		host: hostname(),
		ip:   firstIPv4(),
	}
}

// User returns the resolved username for the session.
func (r *Recorder) User() string { return r.user }

// Startup records the runtime environment before the loop begins.
func (r *Recorder) Startup() {
	wd, _ := os.Getwd()
	r.log.Info("terminal lock started",
		"user", r.user,
		"go_version", runtime.Version(),
		"platform", runtime.GOOS+"/"+runtime.GOARCH,
		"working_dir", wd,
	)
}

// SessionEnd records the authenticated exit.
func (r *Recorder) SessionEnd() {
	r.log.Info("terminal lock ended", "user", r.user)
}

// Attempt records exactly one authentication attempt.
func (r *Recorder) Attempt(method string, success bool) {
	outcome := "FAILED"
	if success {
		outcome = "SUCCESS"
	}
	r.log.Info("exit attempt",
		"user", r.user,
		"host", r.host,
		"ip", r.ip,
		"outcome", outcome,
		"method", method,
	)
}

// SignalBlocked records an intercepted job-control or quit signal.
func (r *Recorder) SignalBlocked(name string) {
	r.log.Warn("blocked signal", "signal", name, "user", r.user)
}

// FrameSkipped records a missing frame asset; the loop continues past it.
func (r *Recorder) FrameSkipped(index int, err error) {
	r.log.Error("missing animation frame", "frame", index, "error", err)
}

// Critical records an unrecoverable error on the way out.
func (r *Recorder) Critical(err error) {
	r.log.Error("critical error", "error", err)
}

// ---- Host Identity

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return unknown
	}
	return u.Username
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return unknown
	}
	return h
}

// firstIPv4 returns the first non-loopback IPv4 address, or "unknown".
func firstIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return unknown
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return unknown
}
