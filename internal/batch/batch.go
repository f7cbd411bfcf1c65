package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/autobrr/pwdigest/internal/display"
	"github.com/autobrr/pwdigest/internal/encoding"
	"github.com/autobrr/pwdigest/internal/pwhash"
	"github.com/autobrr/pwdigest/internal/types"
)

// Config represents the YAML batch file
type Config struct {
	Version  int         `yaml:"version"`
	Encoding string      `yaml:"encoding"`
	Jobs     []types.Job `yaml:"jobs"`

	dir string // directory of the batch file, for relative password files
}

// LoadConfig reads and validates a batch file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read batch file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig parses and validates batch file data
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse batch file: %w", err)
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported batch file version: %d", cfg.Version)
	}

	if len(cfg.Jobs) == 0 {
		return nil, errors.New("no jobs defined in batch file")
	}

	if _, err := encoding.Parse(cfg.Encoding); err != nil {
		return nil, err
	}

	for i, job := range cfg.Jobs {
		if job.Password == "" && job.PasswordFile == "" {
			return nil, fmt.Errorf("job %d (%s): password or password_file is required", i+1, job.Label(i))
		}
		if job.Password != "" && job.PasswordFile != "" {
			return nil, fmt.Errorf("job %d (%s): password and password_file are mutually exclusive", i+1, job.Label(i))
		}
	}

	return &cfg, nil
}

// Process digests every job of cfg using up to workers goroutines.
// Results are returned in job order. A failing job does not stop the others.
func Process(ctx context.Context, cfg *Config, workers int, d display.Displayer) ([]types.Result, error) {
	enc, err := encoding.Parse(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(cfg.Jobs))

	results := make([]types.Result, len(cfg.Jobs))
	indices := make(chan int)
	var completed atomic.Int64
	start := time.Now()

	d.ShowProgress(len(cfg.Jobs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = cfg.processJob(i, enc)

				n := completed.Add(1)
				elapsed := time.Since(start).Seconds()
				var rate float64
				if elapsed > 0 {
					rate = float64(n) / elapsed
				}
				d.UpdateProgress(int(n), rate)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case indices <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	d.FinishProgress()

	if ctxErr != nil {
		return nil, ctxErr
	}

	if !d.IsQuiet() {
		for _, r := range results {
			if r.Success && r.Ignored > 0 {
				d.ShowWarning(fmt.Sprintf("%s: only the first %d of %d bytes affect the digest", r.Label, pwhash.SeedSize, r.Size))
			}
		}
	}
	return results, nil
}

func (c *Config) processJob(i int, enc encoding.Encoding) (result types.Result) {
	job := c.Jobs[i]
	result = types.Result{Job: job, Label: job.Label(i)}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	password, err := c.password(job)
	if err != nil {
		result.Error = err
		return result
	}
	tr, err := pwhash.TraceBytes(password)
	if err != nil {
		result.Error = err
		return result
	}
	result.Size = len(tr.Normalized)
	result.Ignored = tr.IgnoredLen()

	result.Digest, err = encoding.Encode(tr.Digest[:], enc)
	if err != nil {
		result.Error = err
		return result
	}

	if job.Expect != "" {
		_, want, err := encoding.Detect(job.Expect)
		if err != nil {
			result.Error = fmt.Errorf("invalid expected digest: %w", err)
			return result
		}
		ok, err := pwhash.Verify(password, want)
		if err != nil {
			result.Error = err
			return result
		}
		if !ok {
			result.Error = errors.New("digest mismatch")
			return result
		}
		result.Verified = true
	}

	result.Success = true
	return result
}

func (c *Config) password(job types.Job) ([]byte, error) {
	if job.PasswordFile == "" {
		return []byte(job.Password), nil
	}

	path := job.PasswordFile
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read password file: %w", err)
	}
	return []byte(strings.TrimRight(string(data), "\r\n")), nil
}
