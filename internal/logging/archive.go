package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	filePrefix = "sbs_"
	dateLayout = "2006-01-02"
)

// Archive is an io.Writer that appends BaseStation lines to one file per
// day. When a write lands on a new date the previous file is closed and
// compressed with gzip.
type Archive struct {
	dir         string
	useUTC      bool
	logger      *logrus.Logger
	now         func() time.Time
	currentFile *os.File
	currentDate string
	mutex       sync.Mutex
	compressing sync.WaitGroup
}

// NewArchive creates the archive directory and opens today's file.
func NewArchive(dir string, useUTC bool, logger *logrus.Logger) (*Archive, error) {
	return newArchive(dir, useUTC, logger, time.Now)
}

func newArchive(dir string, useUTC bool, logger *logrus.Logger, now func() time.Time) (*Archive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	a := &Archive{
		dir:    dir,
		useUTC: useUTC,
		logger: logger,
		now:    now,
	}

	if err := a.rotate(a.date()); err != nil {
		return nil, fmt.Errorf("failed to initialize archive file: %w", err)
	}

	return a, nil
}

func (a *Archive) date() string {
	now := a.now()
	if a.useUTC {
		now = now.UTC()
	}
	return now.Format(dateLayout)
}

// Write appends p to the file of the current date.
func (a *Archive) Write(p []byte) (int, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.currentFile == nil {
		return 0, fmt.Errorf("archive is closed")
	}

	if date := a.date(); date != a.currentDate {
		a.logger.WithFields(logrus.Fields{
			"old_date": a.currentDate,
			"new_date": date,
		}).Info("Rotating archive file")

		if err := a.rotate(date); err != nil {
			return 0, fmt.Errorf("failed to rotate archive: %w", err)
		}
	}

	return a.currentFile.Write(p)
}

// rotate closes the open file, compresses it in the background and opens
// the file for date. Callers hold the mutex.
func (a *Archive) rotate(date string) error {
	if a.currentFile != nil {
		if err := a.currentFile.Close(); err != nil {
			a.logger.WithError(err).Error("Failed to close archive file")
		}
		a.currentFile = nil

		old := a.path(a.currentDate)
		a.compressing.Add(1)
		go func() {
			defer a.compressing.Done()
			a.compress(old)
		}()
	}

	path := a.path(date)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open archive file %s: %w", path, err)
	}

	a.currentFile = file
	a.currentDate = date

	a.logger.WithField("file", path).Debug("Opened archive file")
	return nil
}

func (a *Archive) path(date string) string {
	return filepath.Join(a.dir, filePrefix+date+".log")
}

// compress replaces path with path.gz.
func (a *Archive) compress(path string) {
	logger := a.logger.WithField("file", path)

	if err := gzipFile(path, path+".gz"); err != nil {
		logger.WithError(err).Error("Failed to compress archive file")
		return
	}
	if err := os.Remove(path); err != nil {
		logger.WithError(err).Error("Failed to remove compressed archive file")
		return
	}

	logger.Info("Archive file compressed")
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	gz.Name = filepath.Base(src)
	gz.ModTime = time.Now()

	if _, err := io.Copy(gz, in); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}

// CurrentFile returns the path of the file being written.
func (a *Archive) CurrentFile() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.currentDate == "" {
		return ""
	}
	return a.path(a.currentDate)
}

// Files lists archive files, compressed ones included.
func (a *Archive) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(a.dir, filePrefix+"*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archive files: %w", err)
	}
	return files, nil
}

// Prune removes archive files last modified more than maxDays ago. The
// file being written is never removed.
func (a *Archive) Prune(maxDays int) error {
	if maxDays <= 0 {
		return fmt.Errorf("maxDays must be positive")
	}

	files, err := a.Files()
	if err != nil {
		return err
	}

	cutoff := a.now().AddDate(0, 0, -maxDays)
	current := a.CurrentFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			a.logger.WithError(err).WithField("file", file).Warn("Failed to stat archive file")
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(file); err != nil {
				a.logger.WithError(err).WithField("file", file).Error("Failed to remove old archive file")
				continue
			}
			removed++
		}
	}

	a.logger.WithField("count", removed).Debug("Pruned archive files")
	return nil
}

// Close closes the current file and waits for pending compressions.
func (a *Archive) Close() error {
	a.mutex.Lock()
	var err error
	if a.currentFile != nil {
		err = a.currentFile.Close()
		a.currentFile = nil
	}
	a.mutex.Unlock()

	a.compressing.Wait()
	return err
}
