package lock

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/GehirnInc/crypt"
	_ "github.com/GehirnInc/crypt/md5_crypt"
	_ "github.com/GehirnInc/crypt/sha256_crypt"
	_ "github.com/GehirnInc/crypt/sha512_crypt"
	"golang.org/x/crypto/bcrypt"
)

// ErrBackendUnavailable is returned by DetectBackend when no credential
// mechanism works on this host. It is fatal at startup.
var ErrBackendUnavailable = errors.New("no credential backend available")

// Backend verifies a secret against the OS credential store. The gate
// depends only on this abstraction; the concrete mechanism is selected
// once at startup.
type Backend interface {
	// Name identifies the mechanism in attempt records.
	Name() string
	// Verify reports whether secret is user's actual password.
	Verify(user string, secret []byte) (bool, error)
}

// DetectBackend probes the host once: the shadow file first, the macOS
// directory service second. Either being unavailable falls through to the
// other; both missing is a hard failure.
func DetectBackend(user string) (Backend, error) {
	sh := &shadowBackend{path: shadowPath}
	if _, err := sh.hashFor(user); err == nil {
		return sh, nil
	}
	if path, err := exec.LookPath("dscl"); err == nil {
		return &dsclBackend{path: path}, nil
	}
	return nil, fmt.Errorf("%w: shadow file unreadable and dscl not found", ErrBackendUnavailable)
}

// ---- Shadow File Backend

const shadowPath = "/etc/shadow"

type shadowBackend struct {
	path string
}

func (b *shadowBackend) Name() string { return "shadow" }

func (b *shadowBackend) Verify(user string, secret []byte) (bool, error) {
	hash, err := b.hashFor(user)
	if err != nil {
		return false, err
	}
	// Locked or passwordless accounts never verify.
	if hash == "" || strings.HasPrefix(hash, "!") || strings.HasPrefix(hash, "*") {
		return false, nil
	}
	if strings.HasPrefix(hash, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(hash), secret)
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	}
	if !crypt.IsHashSupported(hash) {
		return false, fmt.Errorf("unsupported shadow hash format for %s", user)
	}
	switch err := crypt.NewFromHash(hash).Verify(hash, secret); {
	case err == nil:
		return true, nil
	case errors.Is(err, crypt.ErrKeyMismatch):
		return false, nil
	default:
		return false, fmt.Errorf("verifying shadow hash: %w", err)
	}
}

func (b *shadowBackend) hashFor(user string) (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", fmt.Errorf("reading shadow file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 2 && fields[0] == user {
			return fields[1], nil
		}
	}
	return "", fmt.Errorf("no shadow entry for %s", user)
}

// ---- Directory Service Backend

type dsclBackend struct {
	path string
}

func (b *dsclBackend) Name() string { return "dscl" }

// Verify shells out to dscl -authonly, which exits zero only on a correct
// password. dscl has no way to take the secret on stdin, so for the
// lifetime of the child process it is visible in the process table and
// lives in an immutable argv string copy that cannot be wiped.
func (b *dsclBackend) Verify(user string, secret []byte) (bool, error) {
	cmd := exec.Command(b.path, ".", "-authonly", user, string(secret))
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("running dscl: %w", err)
}
