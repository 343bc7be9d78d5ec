package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"gosbs/internal/basestation"
	"gosbs/internal/logging"
)

// Stats counts what happened to the lines of one run.
type Stats struct {
	Lines   int // non-blank lines read
	Decoded int // lines written out
	Failed  int // lines that did not decode
	Skipped int // decoded lines dropped by SkipUnknown
}

// Application decodes a stream of BaseStation lines and re-emits them as
// canonical lines or JSON.
type Application struct {
	config          Config
	logger          *logrus.Logger
	archive         *logging.Archive
	shutdownTimeout time.Duration
}

// ErrShutdownTimeout is returned by Start when the run does not finish
// within the shutdown timeout after a signal. Output may be incomplete.
var ErrShutdownTimeout = errors.New("shutdown timed out, run abandoned")

type runResult struct {
	stats Stats
	err   error
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config:          config,
		logger:          logger,
		shutdownTimeout: 5 * time.Second,
	}
}

// Start opens the configured input and output and runs until the input is
// exhausted or the process is interrupted.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"input":      app.config.Input,
		"format":     app.config.Format,
	}).Debug("Starting BaseStation codec")

	if err := app.config.Validate(); err != nil {
		return err
	}
	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer app.shutdown()

	in, err := openInput(app.config.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(app.config.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan runResult, 1)
	go func() {
		stats, err := app.Run(ctx, in, out)
		done <- runResult{stats, err}
	}()

	res, err := app.wait(ctx, done)
	if err != nil {
		return err
	}

	app.logStats(res.stats)
	if errors.Is(res.err, context.Canceled) {
		return nil
	}
	return res.err
}

// wait blocks until the run finishes. Once ctx is done the run gets
// shutdownTimeout to return before it is abandoned.
func (app *Application) wait(ctx context.Context, done <-chan runResult) (runResult, error) {
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
	}

	app.logger.Info("Received shutdown signal")
	select {
	case res := <-done:
		return res, nil
	case <-time.After(app.shutdownTimeout):
		app.logger.WithField("timeout", app.shutdownTimeout).Error("Shutdown timeout, abandoning run with input still blocked")
		return runResult{}, ErrShutdownTimeout
	}
}

// initializeComponents opens the archive when a log directory is set.
func (app *Application) initializeComponents() error {
	if app.config.LogDir == "" {
		return nil
	}

	archive, err := logging.NewArchive(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	app.archive = archive

	if app.config.RetainDays > 0 {
		if err := archive.Prune(app.config.RetainDays); err != nil {
			app.logger.WithError(err).Warn("Failed to prune archive")
		}
	}
	return nil
}

func (app *Application) shutdown() {
	if app.archive != nil {
		if err := app.archive.Close(); err != nil {
			app.logger.WithError(err).Error("Failed to close archive")
		}
		app.archive = nil
	}
}

// Run decodes every line of in and writes the result to out. Lines that
// fail to decode are logged and counted, or end the run when Strict is set.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats

	w := bufio.NewWriter(out)
	defer w.Flush()

	emit, err := app.emitter(w)
	if err != nil {
		return stats, err
	}

	var buf []byte
	scanner := basestation.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		stats.Lines++

		msg, err := scanner.Message()
		if err != nil {
			stats.Failed++
			app.logDecodeError(scanner.Line(), err)
			if app.config.Strict {
				return stats, fmt.Errorf("line %d: %w", scanner.Line(), err)
			}
			continue
		}

		if app.config.SkipUnknown && !msg.MessageType.Known() {
			stats.Skipped++
			app.logger.WithFields(logrus.Fields{
				"line": scanner.Line(),
				"type": string(msg.MessageType),
			}).Debug("Skipping unknown message type")
			continue
		}

		buf = basestation.AppendEncode(buf[:0], msg)
		if app.archive != nil {
			if _, err := app.archive.Write(buf); err != nil {
				return stats, fmt.Errorf("failed to write to archive: %w", err)
			}
		}
		if err := emit(msg, buf); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		stats.Decoded++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write output: %w", err)
	}
	return stats, nil
}

// emitter returns the writer for the configured format. line is the
// encoded form of msg.
func (app *Application) emitter(w io.Writer) (func(msg *basestation.Message, line []byte) error, error) {
	switch app.config.Format {
	case FormatSBS, "":
		return func(_ *basestation.Message, line []byte) error {
			_, err := w.Write(line)
			return err
		}, nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		return func(msg *basestation.Message, _ []byte) error {
			return enc.Encode(msg)
		}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", app.config.Format)
	}
}

func (app *Application) logDecodeError(line int, err error) {
	fields := logrus.Fields{"line": line}

	var decErr *basestation.DecodeError
	if errors.As(err, &decErr) {
		fields["field"] = decErr.Name
		fields["index"] = decErr.Index
		fields["value"] = decErr.Value
	}

	app.logger.WithFields(fields).WithError(err).Warn("Failed to decode line")
}

func (app *Application) logStats(stats Stats) {
	app.logger.WithFields(logrus.Fields{
		"lines":   stats.Lines,
		"decoded": stats.Decoded,
		"failed":  stats.Failed,
		"skipped": stats.Skipped,
	}).Info("Processing statistics")
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}
