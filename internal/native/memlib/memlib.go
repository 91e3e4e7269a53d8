// Package memlib is an in-process implementation of the engine's
// export/import metadata entry points. Every resource it hands out is
// tracked in an allocation registry so tests can detect leaks, double
// releases and use after release.
package memlib

import (
	"errors"
	"fmt"
	"sync"

	"github.com/huandu/skiplist"
	"go.uber.org/multierr"

	"github.com/slatedb/cfmeta-go/internal/native"
)

var (
	ErrLeak            = errors.New("resource leaked")
	ErrDoubleRelease   = errors.New("resource released twice")
	ErrUseAfterRelease = errors.New("resource used after release")
	ErrForeignResource = errors.New("resource belongs to another library")
)

type kind int

const (
	kindMetadata kind = iota + 1
	kindLiveFiles
)

func (k kind) String() string {
	switch k {
	case kindMetadata:
		return "export_import_files_metadata"
	case kindLiveFiles:
		return "livefiles"
	default:
		return "unknown"
	}
}

type Option func(*Library)

// WithAllocationLimit makes the library refuse allocations once n resources
// are live at the same time. Zero means no limit.
func WithAllocationLimit(n int) Option {
	return func(l *Library) {
		l.limit = n
	}
}

// Library is safe for concurrent use. The resources it returns are not.
type Library struct {
	mu         sync.Mutex
	nextID     uint64
	allocated  uint64
	live       *skiplist.SkipList
	limit      int
	violations []error
}

var _ native.Library = (*Library)(nil)

func New(opts ...Option) *Library {
	l := &Library{
		nextID: 1,
		live:   skiplist.New(skiplist.Uint64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) CreateMetadata() native.Metadata {
	id, ok := l.allocate(kindMetadata)
	if !ok {
		return nil
	}
	return &metadata{lib: l, id: id}
}

func (l *Library) CreateLiveFiles() native.LiveFiles {
	lf := l.newLiveFiles()
	if lf == nil {
		return nil
	}
	return lf
}

func (l *Library) newLiveFiles() *liveFiles {
	id, ok := l.allocate(kindLiveFiles)
	if !ok {
		return nil
	}
	return newLiveFiles(l, id)
}

// Live returns the number of resources that have not been released.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live.Len()
}

// Allocated returns the number of resources ever handed out.
func (l *Library) Allocated() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allocated
}

// Check reports every recorded violation followed by one ErrLeak per live
// resource, in allocation order. It returns nil when the library is clean.
func (l *Library) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	errs := make([]error, 0, len(l.violations)+l.live.Len())
	errs = append(errs, l.violations...)
	for elem := l.live.Front(); elem != nil; elem = elem.Next() {
		errs = append(errs, fmt.Errorf("%w: %s #%d", ErrLeak, elem.Value.(kind), elem.Key().(uint64)))
	}
	return multierr.Combine(errs...)
}

func (l *Library) allocate(k kind) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.limit > 0 && l.live.Len() >= l.limit {
		return 0, false
	}
	id := l.nextID
	l.nextID++
	l.allocated++
	l.live.Set(id, k)
	return id, true
}

func (l *Library) release(id uint64, k kind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.live.Remove(id) == nil {
		l.violations = append(l.violations, fmt.Errorf("%w: %s #%d", ErrDoubleRelease, k, id))
	}
}

func (l *Library) access(id uint64, k kind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.live.Get(id) == nil {
		l.violations = append(l.violations, fmt.Errorf("%w: %s #%d", ErrUseAfterRelease, k, id))
	}
}

func (l *Library) foreign(k kind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.violations = append(l.violations, fmt.Errorf("%w: %s", ErrForeignResource, k))
}
