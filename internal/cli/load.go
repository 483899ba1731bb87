package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/graphdef"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeInvalidArg  = "E002" // Malformed command argument
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load or compile failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Graph build failed
	ErrCodeStoreFailed = "E007" // Triple store open/read/write failed
	ErrCodePullFailed  = "E008" // Pulling an attribute value failed
)

// LoadError represents an error that occurred while loading a definition.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDefinition compiles the graph definition at path (a .cue file or a
// directory holding one CUE package) and classifies failures by code.
func LoadDefinition(path string) (*graphdef.Definition, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("graph definition not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err)}
	}

	if info.IsDir() {
		files, err := graphdef.FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
	}

	def, err := graphdef.Load(path)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return def, nil
}

// convertCompileError converts a definition error to a LoadError with
// position info.
func convertCompileError(err error) *LoadError {
	var compileErr *graphdef.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// buildGraph loads the definition at path and applies it to a new graph.
func buildGraph(path string, logger *slog.Logger) (*graph.Graph, *graphdef.Definition, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, nil, err
	}
	g := graph.New(graph.WithLogger(logger))
	if err := def.Build(g); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	return g, def, nil
}

// failWith reports err through the formatter and returns the exit error
// for the command. LoadErrors keep their own code; anything else uses code.
func failWith(f *OutputFormatter, exit int, code string, err error) error {
	message := err.Error()
	var details any

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
		message = loadErr.Message
		if loadErr.Pos.IsValid() {
			details = map[string]any{
				"file":   loadErr.Pos.Filename(),
				"line":   loadErr.Pos.Line(),
				"column": loadErr.Pos.Column(),
			}
		}
	}

	_ = f.Error(code, message, details)
	return NewExitError(exit, fmt.Sprintf("%s: %s", code, message))
}
