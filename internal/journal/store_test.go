package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/knowledge"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleBatch(narrative string) *contract.Batch {
	return &contract.Batch{
		Changes: []contract.Change{
			{ID: "c1", Op: contract.OpLink, EdgeType: knowledge.EdgeRelatedGoal, FromID: "r1", ToID: "g1"},
			{ID: "c2", Op: contract.OpAdd, Node: &contract.NodeDraft{Type: knowledge.NodeGoal, Title: "Retention"}},
		},
		Citations: []contract.Citation{{ChangeID: "c1", SourceNodeIDs: []string{"r1", "g1"}, Note: "shared metric"}},
		Narrative: narrative,
	}
}

func TestRecordAndGet(t *testing.T) {
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })

	s := newTestStore(t)
	id, err := s.Record(RecordParams{
		DocumentID: "doc-1",
		Batch:      sampleBatch("Link checkout to conversion."),
		Applied:    1,
		Errors:     []string{"Discovery mode is off; skipping add operation."},
	})
	require.NoError(t, err)

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", e.DocumentID)
	assert.NotEmpty(t, e.BatchID)
	assert.Equal(t, "Link checkout to conversion.", e.Narrative)
	assert.Equal(t, 2, e.Changes)
	assert.Equal(t, 1, e.Applied)
	assert.Equal(t, 1, e.Skipped)
	assert.Equal(t, []string{"Discovery mode is off; skipping add operation."}, e.Errors)
	assert.Equal(t, "shared metric", e.Citations[0].Note)
	assert.Equal(t, "2026-03-01 12:00:00", e.CreatedAt)

	var batch contract.Batch
	require.NoError(t, json.Unmarshal(e.Batch, &batch))
	assert.Len(t, batch.Changes, 2)
}

func TestRecord_NilErrorsAndCitations(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Record(RecordParams{DocumentID: "doc-1", Batch: &contract.Batch{Changes: []contract.Change{}}})
	require.NoError(t, err)

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{}, e.Errors)
	assert.Equal(t, []contract.Citation{}, e.Citations)
	assert.Equal(t, 0, e.Skipped)
}

func TestRecord_RequiresBatch(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Record(RecordParams{DocumentID: "doc-1"})
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(42)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecent(t *testing.T) {
	s := newTestStore(t)
	for i, doc := range []string{"doc-1", "doc-2", "doc-1", "doc-1"} {
		_, err := s.Record(RecordParams{DocumentID: doc, Batch: sampleBatch(string(rune('a' + i))), Applied: 2})
		require.NoError(t, err)
	}

	all, err := s.Recent("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "d", all[0].Narrative, "newest first")
	assert.Nil(t, all[0].Batch)

	docOne, err := s.Recent("doc-1", 2)
	require.NoError(t, err)
	require.Len(t, docOne, 2)
	assert.Equal(t, "d", docOne[0].Narrative)
	assert.Equal(t, "c", docOne[1].Narrative)

	none, err := s.Recent("doc-404", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Record(RecordParams{DocumentID: "doc-1", Batch: sampleBatch(""), Applied: 1, Errors: []string{"x"}})
	require.NoError(t, err)
	_, err = s.Record(RecordParams{DocumentID: "doc-2", Batch: sampleBatch(""), Applied: 2})
	require.NoError(t, err)

	st, err := s.Stats("doc-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Batches: 1, Applied: 1, Skipped: 1}, *st)

	st, err = s.Stats("")
	require.NoError(t, err)
	assert.Equal(t, Stats{Batches: 2, Applied: 3, Skipped: 1}, *st)
}

func TestNew_OpenFailure(t *testing.T) {
	orig := openDB
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { openDB = orig })

	_, err := New(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal: open database")
}

func TestNew_ReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	_, err = s.Record(RecordParams{DocumentID: "doc-1", Batch: sampleBatch("kept")})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	entries, err := s2.Recent("doc-1", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Narrative)
}
