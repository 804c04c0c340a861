package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	perr "tzbucket/internal/platform/errors"
)

// outputFormat selects the rendering mode shared by all subcommands
type outputFormat uint8

const (
	outputText outputFormat = iota
	outputJSON
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return outputJSON, nil
	case "text":
		return outputText, nil
	default:
		return outputText, perr.Inputf("Invalid output_format '%s'. Expected: json, text", s)
	}
}

// outputFormatHint guesses the rendering mode for failures that occur
// before the output format itself has been validated
func outputFormatHint(s string) outputFormat {
	if strings.EqualFold(s, "json") {
		return outputJSON
	}
	return outputText
}

// renderError writes err to w in the requested format. JSON gets the full
// wire envelope so scripts can read exit_code and status from stderr
func renderError(w io.Writer, err error, of outputFormat) {
	if of == outputJSON {
		if b, jerr := json.MarshalIndent(perr.WireFrom(err), "", "  "); jerr == nil {
			fmt.Fprintln(w, string(b))
			return
		}
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
