package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sourcegraph/conc/pool"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/quickview/java"
)

var log = commonlog.GetLogger("quickview.scanner")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// ErrUnknownScan is returned for scan IDs that were never submitted.
var ErrUnknownScan = errors.New("unknown scan")

type Request struct {
	ID        string
	Root      string
	CreatedAt time.Time
}

// FileSummary is what a scan records about one source file.
type FileSummary struct {
	Path         string
	PrimaryType  string
	Parents      []string
	Declarations []java.Declaration
	Fingerprint  uint64
}

type Result struct {
	ID      string
	Status  Status
	Request Request
	Files   []FileSummary
	// Types maps a simple type name to the first file named <Name>.java.
	Types     map[string]string
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (s *Result) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Progress * 100) / s.Total
}

// Done reports whether the scan has reached a final status.
func (s *Result) Done() bool {
	switch s.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Options configure how a Scanner walks and reads a tree.
type Options struct {
	Extractor        java.Extractor
	Exclude          []string
	RespectGitignore bool
	// Workers bounds parallel file reads; zero means one per CPU.
	Workers int
}

type job struct {
	ctx context.Context
	req Request
}

// Scanner indexes .java files under a root in the background. Only one scan
// is live at a time: submitting a new one cancels those still pending or
// running.
type Scanner struct {
	mu       sync.RWMutex
	opts     Options
	scans    map[string]*Result
	cancels  map[string]context.CancelFunc
	done     map[string]chan struct{}
	latest   string
	requests chan job
	quit     chan struct{}
	nextID   int
	closed   bool
}

func New(opts Options) *Scanner {
	s := newScanner(opts)
	go s.run()
	return s
}

func newScanner(opts Options) *Scanner {
	if opts.Extractor == nil {
		opts.Extractor = java.RegexExtractor{}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	s := &Scanner{
		opts:     opts,
		scans:    make(map[string]*Result),
		cancels:  make(map[string]context.CancelFunc),
		done:     make(map[string]chan struct{}),
		requests: make(chan job, 100),
		quit:     make(chan struct{}),
	}
	return s
}

func (s *Scanner) run() {
	for {
		select {
		case j := <-s.requests:
			s.processScan(j.ctx, j.req)
		case <-s.quit:
			return
		}
	}
}

type scanResult struct {
	files  []FileSummary
	types  map[string]string
	errors []string
}

func (s *Scanner) processScan(ctx context.Context, req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	if ctx.Err() == nil {
		result.Status = StatusInProgress
		result.StartedAt = time.Now()
	}
	s.mu.Unlock()

	var sr scanResult
	if ctx.Err() == nil {
		log.Infof("scanning %s (scan %s)", req.Root, req.ID)
		sr = s.scanDirectory(ctx, req.ID, req.Root)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Errors = sr.errors
	switch {
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		result.Error = ctx.Err().Error()
		log.Infof("scan %s cancelled", req.ID)
	case len(sr.errors) > 0 && len(sr.files) == 0:
		result.Status = StatusFailed
		result.Error = sr.errors[0]
		log.Warningf("scan %s failed: %s", req.ID, result.Error)
	default:
		result.Status = StatusCompleted
		result.Files = sr.files
		result.Types = sr.types
		s.latest = req.ID
		log.Infof("scan %s indexed %d files", req.ID, len(sr.files))
	}
	if cancel, ok := s.cancels[req.ID]; ok {
		cancel()
		delete(s.cancels, req.ID)
	}
	close(s.done[req.ID])
}

func (s *Scanner) scanDirectory(ctx context.Context, id, root string) scanResult {
	var sr scanResult
	filter, err := NewFilter(root, s.opts.Exclude, s.opts.RespectGitignore)
	if err != nil {
		sr.errors = append(sr.errors, err.Error())
		return sr
	}

	var files []string
	problems, err := Walk(ctx, root, filter, func(path string) error {
		files = append(files, path)
		return nil
	})
	sr.errors = append(sr.errors, problems...)
	if err != nil {
		if ctx.Err() == nil {
			sr.errors = append(sr.errors, err.Error())
		}
		return sr
	}

	s.mu.Lock()
	s.scans[id].Total = len(files)
	s.mu.Unlock()

	summaries := make([]*FileSummary, len(files))
	var errMu sync.Mutex
	p := pool.New().WithMaxGoroutines(s.opts.Workers).WithContext(ctx)
	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer s.advance(id)

			data, err := os.ReadFile(path)
			if err != nil {
				errMu.Lock()
				sr.errors = append(sr.errors, fmt.Sprintf("read %s: %v", path, err))
				errMu.Unlock()
				return nil
			}
			unit := java.NewSourceUnit(path, string(data))
			summaries[i] = &FileSummary{
				Path:         path,
				PrimaryType:  unit.PrimaryType,
				Parents:      java.ParentTypes(unit.Text),
				Declarations: s.opts.Extractor.Extract(unit),
				Fingerprint:  xxhash.Sum64(data),
			}
			return nil
		})
	}
	_ = p.Wait()
	if ctx.Err() != nil {
		return sr
	}

	sr.types = make(map[string]string)
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		sr.files = append(sr.files, *summary)
		name := strings.TrimSuffix(filepath.Base(summary.Path), filepath.Ext(summary.Path))
		if _, seen := sr.types[name]; !seen {
			sr.types[name] = summary.Path
		}
	}
	sort.Strings(sr.errors)
	return sr
}

func (s *Scanner) advance(id string) {
	s.mu.Lock()
	s.scans[id].Progress++
	s.mu.Unlock()
}

// Submit queues a scan of req.Root and cancels every scan still pending or
// in progress.
func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	for id, cancel := range s.cancels {
		log.Debugf("scan %s superseded", id)
		cancel()
	}

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[req.ID] = cancel
	s.done[req.ID] = make(chan struct{})
	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}
	s.mu.Unlock()

	s.requests <- job{ctx: ctx, req: req}
	return req.ID
}

// Cancel stops the scan with the given ID if it has not finished yet.
func (s *Scanner) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cancel, ok := s.cancels[id]
	if ok {
		cancel()
	}
	return ok
}

// Wait blocks until the scan finishes or ctx is done.
func (s *Scanner) Wait(ctx context.Context, id string) (*Result, error) {
	s.mu.RLock()
	done, ok := s.done[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("scan %s: %w", id, ErrUnknownScan)
	}
	select {
	case <-done:
		result, _ := s.Get(id)
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get returns a snapshot of the scan with the given ID.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Request.CreatedAt.Before(results[j].Request.CreatedAt)
	})
	return results
}

// Latest returns the most recently completed scan.
func (s *Scanner) Latest() (*Result, bool) {
	s.mu.RLock()
	id := s.latest
	s.mu.RUnlock()
	if id == "" {
		return nil, false
	}
	return s.Get(id)
}

// FindType returns the path of <name>.java from the latest completed scan.
func (s *Scanner) FindType(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[s.latest]
	if !ok {
		return "", false
	}
	path, ok := result.Types[name]
	return path, ok
}

// Close cancels all scans and stops the background worker.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, cancel := range s.cancels {
		cancel()
	}
	close(s.quit)
}
