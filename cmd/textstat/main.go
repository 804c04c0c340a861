// Command textstat prints line, word, and character statistics for files
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"tzbucket/internal/core/textstat"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("textstat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format  = fs.String("format", "text", "output format: json, text")
		verbose = fs.Bool("verbose", false, "verbose logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: textstat [flags] FILE...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "Error: at least one input file is required")
		fs.Usage()
		return 2
	}
	if *format != "json" && *format != "text" {
		fmt.Fprintf(stderr, "Error: Invalid format '%s'. Expected: json, text\n", *format)
		return 2
	}

	stats := make(map[string]textstat.Stats, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: Failed to read file: %s: %v\n", path, err)
			return 2
		}
		st := textstat.Analyze(string(data))
		stats[path] = st
		if *verbose {
			fmt.Fprintf(stderr, "analyzed %s (%d bytes)\n", path, st.Bytes)
		}
	}

	if *format == "json" {
		// one file renders bare stats; several render an object keyed by path
		var payload any = stats
		if len(files) == 1 {
			payload = stats[files[0]]
		}
		enc, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(stdout, string(enc))
		return 0
	}

	for _, path := range files {
		printStats(stdout, path, stats[path])
	}
	return 0
}

func printStats(w io.Writer, path string, st textstat.Stats) {
	fmt.Fprintf(w, "--- %s ---\n", path)
	fmt.Fprintf(w, "  Lines:            %d\n", st.Lines)
	fmt.Fprintf(w, "  Words:            %d\n", st.Words)
	fmt.Fprintf(w, "  Characters:       %d\n", st.Chars)
	fmt.Fprintf(w, "  Bytes:            %d\n", st.Bytes)
	most := "(none)"
	if st.MostCommonWord != nil {
		most = *st.MostCommonWord
	}
	fmt.Fprintf(w, "  Most common word: %s\n", most)
	fmt.Fprintf(w, "  Unique words:     %d\n", st.UniqueWords)
	fmt.Fprintln(w)
}
