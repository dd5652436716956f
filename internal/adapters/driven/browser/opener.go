// Package browser opens files and URLs with the platform's default handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.Opener = (*Opener)(nil)

// Opener launches the system browser.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewOpener creates an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			_, err := launch(name, args...)
			return err
		},
	}
}

// launch starts the command and reaps it in the background. The returned
// channel receives the exit result.
func launch(name string, args ...string) (<-chan error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

// Open hands target to the platform opener without waiting for it.
func (o *Opener) Open(target string) error {
	name, args, err := command(o.goos, target)
	if err != nil {
		return err
	}
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

func command(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
