package codegen

import (
	"context"
	"sync"
)

// ScanFunc lists the identifiers currently stored under a prefix.
type ScanFunc func(ctx context.Context, prefix string) ([]string, error)

// Sequencer hands out identifiers per prefix scope. The scope lock is held
// across the store scan and the issue, and the last issued number is
// remembered, so two creates in the same process never draw the same
// identifier even before the first one is persisted.
//
// Writers in other processes are not coordinated here; the unique indexes on
// the code columns reject a duplicate in that case.
type Sequencer struct {
	mu     sync.Mutex
	scopes map[string]*scope
}

type scope struct {
	mu   sync.Mutex
	last int
}

func NewSequencer() *Sequencer {
	return &Sequencer{scopes: make(map[string]*scope)}
}

// Issue returns the next identifier for prefix padded to width.
func (s *Sequencer) Issue(ctx context.Context, prefix string, width int, scan ScanFunc) (string, error) {
	sc := s.scope(prefix)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	existing, err := scan(ctx, prefix)
	if err != nil {
		return "", err
	}

	seq := MaxSequence(prefix, existing)
	if sc.last > seq {
		seq = sc.last
	}
	seq++
	sc.last = seq

	return format(prefix, width, seq), nil
}

// NIM issues the next student number for a major and batch year.
func (s *Sequencer) NIM(ctx context.Context, major string, batch int, scan ScanFunc) (string, error) {
	code, err := MajorCode(major)
	if err != nil {
		return "", err
	}
	return s.Issue(ctx, NIMPrefix(code, batch), nimWidth, scan)
}

// SubjectCode issues the next subject code for a major.
func (s *Sequencer) SubjectCode(ctx context.Context, major string, scan ScanFunc) (string, error) {
	prefix, err := SubjectPrefix(major)
	if err != nil {
		return "", err
	}
	return s.Issue(ctx, prefix, subjectWidth, scan)
}

// ClassCode issues the next class code.
func (s *Sequencer) ClassCode(ctx context.Context, scan ScanFunc) (string, error) {
	return s.Issue(ctx, ClassPrefix, classWidth, scan)
}

func (s *Sequencer) scope(prefix string) *scope {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scopes[prefix]
	if !ok {
		sc = &scope{}
		s.scopes[prefix] = sc
	}
	return sc
}
