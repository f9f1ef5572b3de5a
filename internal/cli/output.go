package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printJSON writes v to w as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

func success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

// PrintError reports err on w in red.
func PrintError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}
