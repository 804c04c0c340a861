package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"tzbucket/internal/core/bucket"
	"tzbucket/internal/core/localtime"
	"tzbucket/internal/core/timeparse"
	perr "tzbucket/internal/platform/errors"
	"tzbucket/internal/platform/logger"
)

const (
	// batchLines bounds how many lines are in flight when --workers > 1
	batchLines = 256

	maxLineBytes = 1024 * 1024
)

// streamConfig carries the resolved options for one bucket run
type streamConfig struct {
	zone      *localtime.Zone
	interval  bucket.Interval
	weekStart bucket.WeekStart
	format    timeparse.Format
	output    outputFormat
	workers   int
	keepGoing bool
}

func newBucketCmd() *cobra.Command {
	var (
		tzName     string
		interval   string
		weekStart  string
		format     string
		outFormat  string
		inputPath  string
		forceStdin bool
		workers    int
		keepGoing  bool
	)

	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Compute time buckets for timestamps",
		Long: `Read one timestamp per line and print the bucket each falls into.

Lines are trimmed and empty lines are skipped. Bucket boundaries are
resolved in the target timezone, so days across DST transitions keep
their real 23h or 25h length. Input files ending in .gz are decompressed
transparently.`,
		Example: `  echo 1774743300000 | tzbucket bucket --tz Europe/Berlin
  tzbucket bucket -t America/New_York -i week --input stamps.txt
  tzbucket bucket -f rfc3339 --output-format json --input events.txt.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return fail(cmd, err, outputFormatHint(outFormat))
			}
			rawOut := st.str(cmd, "output-format", "OUTPUT_FORMAT", st.file.OutputFormat, outFormat)
			of, err := parseOutputFormat(rawOut)
			if err != nil {
				return fail(cmd, err, outputFormatHint(rawOut))
			}

			cfg := streamConfig{
				output:    of,
				workers:   st.num(cmd, "workers", "WORKERS", st.file.Workers, workers),
				keepGoing: keepGoing,
			}
			if cfg.zone, err = localtime.LoadZone(st.str(cmd, "tz", "TIMEZONE", st.file.Timezone, tzName)); err != nil {
				return fail(cmd, err, of)
			}
			if cfg.interval, err = bucket.ParseInterval(st.str(cmd, "interval", "INTERVAL", st.file.Interval, interval)); err != nil {
				return fail(cmd, err, of)
			}
			if cfg.weekStart, err = bucket.ParseWeekStart(st.str(cmd, "week-start", "WEEK_START", st.file.WeekStart, weekStart)); err != nil {
				return fail(cmd, err, of)
			}
			if cfg.format, err = timeparse.ParseFormat(st.str(cmd, "format", "TIMESTAMP_FORMAT", st.file.TimestampFormat, format)); err != nil {
				return fail(cmd, err, of)
			}

			in, err := openInput(cmd, inputPath, forceStdin)
			if err != nil {
				return fail(cmd, err, of)
			}
			defer in.Close()

			if err := runBucketStream(cmd, in, cfg); err != nil {
				return fail(cmd, err, of)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tzName, "tz", "t", "UTC", "IANA timezone (e.g., Europe/Berlin)")
	cmd.Flags().StringVarP(&interval, "interval", "i", "day", "bucket interval: day, week, month")
	cmd.Flags().StringVar(&weekStart, "week-start", "monday", "week start day: monday or sunday (for week interval)")
	cmd.Flags().StringVarP(&format, "format", "f", "epoch_ms", "input format: epoch_ms, epoch_s, rfc3339")
	cmd.Flags().StringVar(&outFormat, "output-format", "text", "output format: json, text")
	cmd.Flags().StringVar(&inputPath, "input", "-", "input file path (use - for stdin; .gz is decompressed)")
	cmd.Flags().BoolVar(&forceStdin, "stdin", false, "read from stdin")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent line processors (output stays in input order)")
	cmd.Flags().BoolVar(&keepGoing, "continue-on-error", false, "log and skip unprocessable lines instead of aborting")
	return cmd
}

// openInput returns the line source for the bucket stream. "-" and --stdin
// select the command's stdin; file paths ending in .gz are decompressed
func openInput(cmd *cobra.Command, path string, forceStdin bool) (io.ReadCloser, error) {
	if forceStdin || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to open file '%s'", path)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			return nil, perr.Wrapf(cerr, perr.ErrorCodeRuntime, "Failed to open file '%s'", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to open file '%s'", path)
	}
	return &gzipFile{gz: gz, f: f}, nil
}

// gzipFile closes the decompressor and the underlying file together
type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	gerr := g.gz.Close()
	if ferr := g.f.Close(); ferr != nil {
		return ferr
	}
	return gerr
}

// runBucketStream reads timestamps line by line and emits one bucket per
// line in input order, fanning batches out to workers when configured
func runBucketStream(cmd *cobra.Command, in io.Reader, cfg streamConfig) error {
	log := logger.C(logger.WithRun(cmd.Context(), uuid.NewString()))
	out := cmd.OutOrStdout()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var processed, skipped int
	batch := make([]string, 0, batchLines)

	flush := func() error {
		results := computeBatch(batch, cfg)
		for i, r := range results {
			if r.err != nil {
				if cfg.keepGoing {
					skipped++
					log.Warn().Str("line", batch[i]).Err(r.err).Msg("skipping unprocessable line")
					continue
				}
				return perr.Wrapf(r.err, perr.ErrorCodeInput, "Error processing '%s'", batch[i])
			}
			if err := writeResult(out, cfg.output, r.res); err != nil {
				return err
			}
			processed++
		}
		batch = batch[:0]
		return nil
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		batch = append(batch, line)
		if len(batch) >= batchLines {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to read line")
	}
	if err := flush(); err != nil {
		return err
	}

	log.Debug().Int("processed", processed).Int("skipped", skipped).Msg("bucket stream done")
	return nil
}

type lineOutcome struct {
	res bucket.Result
	err error
}

// computeBatch buckets every line of the batch, concurrently when workers
// allow. Results line up index for index with the input so emission order
// never depends on scheduling
func computeBatch(lines []string, cfg streamConfig) []lineOutcome {
	out := make([]lineOutcome, len(lines))

	if cfg.workers <= 1 {
		for i, line := range lines {
			out[i].res, out[i].err = bucket.ComputeFromString(line, cfg.format, cfg.zone, cfg.interval, cfg.weekStart)
		}
		return out
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.workers)
	for i := range lines {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i].res, out[i].err = bucket.ComputeFromString(lines[i], cfg.format, cfg.zone, cfg.interval, cfg.weekStart)
		}(i)
	}
	wg.Wait()
	return out
}

func writeResult(w io.Writer, of outputFormat, res bucket.Result) error {
	if of == outputJSON {
		b, err := json.Marshal(res)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to serialize JSON")
		}
		fmt.Fprintln(w, string(b))
		return nil
	}
	fmt.Fprintf(w, "%s -> %s to %s\n", res.Bucket.Key, res.Bucket.StartLocal, res.Bucket.EndLocal)
	return nil
}
