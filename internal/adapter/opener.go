package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoOpener is returned when no handler could open a URL
var ErrNoOpener = errors.New("no program available to open url")

// Opener opens trailer URLs in a browser or a configured program
type Opener struct {
	command string   // configured program, empty for auto-detection
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath is one way to hand a URL to a program
type launchPath struct {
	path string   // command name, or "open-a:AppName" on macOS
	args []string // arguments before the URL
}

// candidates lists the programs tried in order when nothing is configured.
// Video players come first since trailers are YouTube links they can stream.
var candidates = map[string][]launchPath{
	"darwin": {
		{path: "open-a:IINA"},
		{path: "mpv"},
	},
	"linux": {
		{path: "mpv"},
		{path: "xdg-open"},
	},
	"windows": {
		{path: "mpv"},
	},
}

// NewOpener creates an Opener. An empty command enables auto-detection.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open hands url to the configured program, the first available candidate,
// or the system default handler, in that order
func (o *Opener) Open(url string) error {
	if url == "" {
		return errors.New("empty url")
	}

	// Tier 1: configured program
	if o.command != "" {
		o.logger.Info("opening with configured program", "command", o.command, "url", url)
		return o.launch(launchPath{path: o.command, args: o.args}, url)
	}

	// Tier 2: platform candidates
	paths, ok := candidates[runtime.GOOS]
	if !ok {
		paths = candidates["linux"]
	}
	for _, lp := range paths {
		err := o.launch(lp, url)
		if err == nil {
			o.logger.Info("opened with detected program", "path", lp.path)
			return nil
		}
		o.logger.Debug("launch path not available", "path", lp.path, "error", err)
	}

	// Tier 3: system default
	o.logger.Info("no candidate program found, using system default")
	return o.launchDefault(url)
}

func (o *Opener) launch(lp launchPath, url string) error {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		args := append([]string{"-a", app}, lp.args...)
		return o.start("open", append(args, url)...)
	}
	if _, err := o.lookPath(lp.path); err != nil {
		return fmt.Errorf("%s: %w", lp.path, err)
	}
	args := append(append([]string{}, lp.args...), url)
	return o.start(lp.path, args...)
}

func (o *Opener) launchDefault(url string) error {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = o.start("open", url)
	case "windows":
		err = o.start("cmd", "/c", "start", "", url)
	default:
		err = o.start("xdg-open", url)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoOpener, err)
	}
	return nil
}
