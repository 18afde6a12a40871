package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tweetscrape/internal/model"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, including help
	ExitFailure      = 1 // Usage error or duplicate add
	ExitCommandError = 2 // Fatal run failure (bad config, store unavailable, remote or storage failure)
)

// Error codes reported in structured error responses.
const (
	CodeUsage     = "E001"
	CodeDuplicate = "E002"
	CodeConfig    = "E003"
	CodeStorage   = "E004"
	CodeRemote    = "E005"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError, which covers
// usage errors raised by cobra itself.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// configError marks a configuration failure.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// toExitError assigns an exit code to a command failure. Usage and
// duplicate errors keep their type and exit with ExitFailure; everything
// else is fatal.
func toExitError(err error) error {
	var exitErr *ExitError
	var cfgErr *configError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case model.IsUsageError(err), model.IsDuplicateError(err):
		return err
	case errors.As(err, &cfgErr):
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	case model.IsRemoteError(err):
		return WrapExitError(ExitCommandError, "search failed", err)
	default:
		return WrapExitError(ExitCommandError, "storage failed", err)
	}
}

// errorCode classifies err for structured output.
func errorCode(err error) string {
	var cfgErr *configError
	switch {
	case model.IsUsageError(err):
		return CodeUsage
	case model.IsDuplicateError(err):
		return CodeDuplicate
	case errors.As(err, &cfgErr):
		return CodeConfig
	case model.IsRemoteError(err):
		return CodeRemote
	case GetExitCode(err) == ExitFailure:
		return CodeUsage
	default:
		return CodeStorage
	}
}

// ReportError writes the diagnostic for a failed command to w.
func ReportError(w io.Writer, err error) {
	var dup *model.DuplicateError
	if errors.As(err, &dup) {
		fmt.Fprintf(w, "Topic/Query already exists, ID=%d\n", dup.ExistingID)
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if GetExitCode(err) == ExitFailure {
		fmt.Fprintln(w, "For help use --help.")
	}
}

// TextRenderer is implemented by payloads with a custom text form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// OutputFormatter handles text, JSON, and YAML output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard structured response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`                           // "E001", "E002", etc.
	Message string `json:"message" yaml:"message"`                     // human-readable message
	Details any    `json:"details,omitempty" yaml:"details,omitempty"` // additional context
}

// Structured reports whether output is machine-readable.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "yaml"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Structured() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	if r, ok := data.(TextRenderer); ok {
		return r.RenderText(f.Writer)
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Structured() {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(resp)
	}
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(resp); err != nil {
		return err
	}
	return enc.Close()
}

// Diagnostic writes one line to the diagnostic stream regardless of format.
func (f *OutputFormatter) Diagnostic(format string, args ...any) {
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	f.Diagnostic(format, args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
