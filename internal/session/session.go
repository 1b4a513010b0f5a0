// Package session owns the single live document and serializes every
// access to it. Assistant proposals and direct edits both go through the
// same lock, so an apply never interleaves with another mutation.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/HendryAvila/prdgraph/internal/apply"
	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/journal"
	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/lint"
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

// ErrNoJournal is returned by journal queries when the session runs
// without one.
var ErrNoJournal = errors.New("journal is disabled")

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	editor   *prd.Editor
	policies policy.Set
	applier  *apply.Applier
	journal  *journal.Store
	log      *logrus.Entry
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every structurally valid batch in store.
func WithJournal(store *journal.Store) Option {
	return func(s *Session) { s.journal = store }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) { s.log = log }
}

// WithPolicies overrides the default policy tables.
func WithPolicies(p policy.Set) Option {
	return func(s *Session) { s.policies = p }
}

// New starts a session over doc. A nil doc starts an empty document.
func New(doc *prd.Document, opts ...Option) (*Session, error) {
	ed, err := prd.NewEditor(doc)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	s := &Session{editor: ed, policies: policy.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = logrus.NewEntry(l)
	}
	s.log = s.log.WithField("document", ed.Document().Meta.ID)
	s.applier = apply.New(s.policies, s.log.WithField("component", "apply"))
	return s, nil
}

// DocumentID returns the id of the live document.
func (s *Session) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document().Meta.ID
}

// Policies returns the policy tables in force.
func (s *Session) Policies() policy.Set { return s.policies }

// Snapshot returns a deep copy of the document.
func (s *Session) Snapshot() *prd.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot()
}

// Graph builds the full knowledge graph of the current document.
func (s *Session) Graph() knowledge.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knowledge.BuildGraph(s.editor.Document())
}

// ContextPack builds the focused pack for the assistant. A nil focus
// means general.
func (s *Session) ContextPack(focus *knowledge.Focus) knowledge.ContextPack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knowledge.BuildContextPack(s.editor.Document(), focus, s.policies)
}

// FocusLabel resolves a short label for the given node ids.
func (s *Session) FocusLabel(nodeIDs []string) *knowledge.FocusLabel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knowledge.FocusMeta(s.editor.Document(), nodeIDs)
}

// Lint runs the requirement rules over the current document.
func (s *Session) Lint() lint.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lint.Document(s.editor.Document(), s.policies.TermPolicy)
}

// Apply validates and applies an untrusted change batch. Batches that
// pass structural validation are journaled; journal failures are logged
// and never change the result.
func (s *Session) Apply(raw any) apply.Result {
	batch, rejected := s.applier.Validate(raw)
	if batch == nil {
		return rejected
	}

	s.mu.Lock()
	res := s.applier.ApplyBatch(batch, s.editor)
	docID := s.editor.Document().Meta.ID
	s.mu.Unlock()

	s.record(docID, batch, res)
	return res
}

func (s *Session) record(docID string, batch *contract.Batch, res apply.Result) {
	if s.journal == nil {
		return
	}
	id, err := s.journal.Record(journal.RecordParams{
		DocumentID: docID,
		Batch:      batch,
		Applied:    res.Applied,
		Errors:     res.Errors,
	})
	if err != nil {
		s.log.WithError(err).Warn("journal write failed")
		return
	}
	s.log.WithField("entry", id).Debug("batch journaled")
}

// Edit runs fn with exclusive access to the editor. fn must not keep the
// editor after returning.
func (s *Session) Edit(fn func(ed *prd.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.editor)
}

// SetDiscoveryMode switches whether proposals may add entities.
func (s *Session) SetDiscoveryMode(mode prd.DiscoveryMode) error {
	return s.Edit(func(ed *prd.Editor) error {
		if err := ed.SetDiscoveryMode(mode); err != nil {
			return err
		}
		s.log.WithField("mode", mode).Info("discovery mode changed")
		return nil
	})
}

// Journal returns the most recent journal entries for this document.
func (s *Session) Journal(limit int) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Recent(s.DocumentID(), limit)
}

// JournalEntry returns one journal entry including its batch.
func (s *Session) JournalEntry(id int64) (*journal.Entry, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Get(id)
}

// JournalStats summarizes the journal for this document.
func (s *Session) JournalStats() (*journal.Stats, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Stats(s.DocumentID())
}

// Save writes the current document to path (YAML, or JSON by extension).
func (s *Session) Save(path string) error {
	return prd.SaveFile(path, s.Snapshot())
}
