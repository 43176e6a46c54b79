// Package compile invokes the configured build command against every
// discovered build-source file under a harvested layout.
package compile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
)

// Result records one build invocation
type Result struct {
	File     string   // absolute path of the source file
	Dir      string   // working directory the command ran in
	Command  []string // full argv, including the appended file name
	Output   string   // combined stdout/stderr
	Err      error    // nil on success
	Duration time.Duration
}

// Succeeded reports whether the invocation exited cleanly
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Report is the ordered outcome of a build scan
type Report struct {
	Results []Result
}

// Failures counts failed invocations
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if !res.Succeeded() {
			n++
		}
	}
	return n
}

// Successes counts clean invocations
func (r *Report) Successes() int {
	return len(r.Results) - r.Failures()
}

// Runner executes the build command per matched file, one at a time
type Runner struct {
	command   []string
	extension string
	logger    logger.Logger
}

// NewRunner creates a runner for the given command and source extension
func NewRunner(command []string, extension string, log logger.Logger) *Runner {
	var runnerLogger logger.Logger
	if log != nil {
		runnerLogger = log.WithScope("build")
	}

	return &Runner{
		command:   command,
		extension: extension,
		logger:    runnerLogger,
	}
}

// Run recursively enumerates every file under root matching the
// configured extension and invokes the build command against each, in
// enumeration order, with the file's directory as the process working
// directory. A failed invocation is recorded and the scan continues;
// only scan errors abort. The run blocks until each command exits
// before moving to the next file.
func (r *Runner) Run(ctx context.Context, root string) (*Report, error) {
	report := &Report{}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", path, err)
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), r.extension) {
			return nil
		}

		report.Results = append(report.Results, r.buildFile(ctx, path))
		return nil
	})
	if err != nil {
		return report, err
	}

	return report, nil
}

// buildFile runs one build command with the file's directory as the
// process working directory.
func (r *Runner) buildFile(ctx context.Context, path string) Result {
	dir := filepath.Dir(path)
	args := append(append([]string{}, r.command[1:]...), filepath.Base(path))

	startTime := time.Now()
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Dir = dir

	var outputBuffer bytes.Buffer
	cmd.Stdout = &outputBuffer
	cmd.Stderr = &outputBuffer

	runErr := cmd.Run()
	duration := time.Since(startTime)

	result := Result{
		File:     path,
		Dir:      dir,
		Command:  append([]string{r.command[0]}, args...),
		Output:   outputBuffer.String(),
		Err:      runErr,
		Duration: duration,
	}

	if r.logger != nil {
		if runErr != nil {
			r.logger.Warn("Build failed, continuing scan",
				logger.WithField("file", filepath.Base(path)),
				logger.WithField("dir", dir),
				logger.WithField("error", runErr))
		} else {
			r.logger.Debug(fmt.Sprintf("Built %s in %s", filepath.Base(path), duration))
		}
	}

	return result
}
