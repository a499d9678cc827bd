package mediaserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/scenra/scenra/internal/mediaserver/tmdb"
	"golang.org/x/term"
)

const verifyTimeout = 15 * time.Second

// ErrEmptyAPIKey is returned when the prompt yields nothing
var ErrEmptyAPIKey = errors.New("api key cannot be empty")

// AuthResult contains the verified credentials
type AuthResult struct {
	APIKey string
}

// SecretReader reads one line of hidden input
type SecretReader func() (string, error)

// AuthFlow prompts for a TMDB API key and verifies it before returning
type AuthFlow struct {
	baseURL    string
	language   string
	out        io.Writer
	readSecret SecretReader
	logger     *slog.Logger
}

// NewAuthFlow creates an interactive flow reading from the terminal
func NewAuthFlow(baseURL, language string, logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		baseURL:    baseURL,
		language:   language,
		out:        os.Stdout,
		readSecret: terminalSecret,
		logger:     logger,
	}
}

// WithIO replaces the prompt output and secret source
func (f *AuthFlow) WithIO(out io.Writer, read SecretReader) *AuthFlow {
	f.out = out
	f.readSecret = read
	return f
}

// Run prompts for the key and checks it against the provider
func (f *AuthFlow) Run(ctx context.Context) (*AuthResult, error) {
	key, err := f.Prompt()
	if err != nil {
		return nil, err
	}
	if err := f.Verify(ctx, key); err != nil {
		return nil, err
	}
	fmt.Fprintln(f.out, "Authentication successful!")
	return &AuthResult{APIKey: key}, nil
}

// Prompt asks for the key and returns it trimmed
func (f *AuthFlow) Prompt() (string, error) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "TMDB Authentication")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(f.out, "Create a key at https://www.themoviedb.org/settings/api")
	fmt.Fprint(f.out, "API key: ")

	key, err := f.readSecret()
	fmt.Fprintln(f.out) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read api key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyAPIKey
	}
	return key, nil
}

// Verify checks key with a cheap authenticated request
func (f *AuthFlow) Verify(ctx context.Context, key string) error {
	client, err := tmdb.New(key, f.baseURL, f.language, tmdb.WithLogger(f.logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := client.VerifyKey(ctx); err != nil {
		f.logger.Warn("api key rejected", "error", err)
		return fmt.Errorf("api key rejected: %w", err)
	}
	return nil
}

// terminalSecret reads without echo when stdin is a terminal
func terminalSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
