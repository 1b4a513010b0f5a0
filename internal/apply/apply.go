// Package apply turns a validated change batch into mutations of a PRD.
//
// Changes are applied one at a time, in order, against the live document.
// A failing change is reported and skipped; it never aborts the batch, and
// later changes see the effects of earlier successful ones. Only a batch
// that fails structural validation is rejected as a whole.
package apply

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

// Result is what the end user is shown after an apply.
type Result struct {
	Applied int      `json:"applied"`
	Errors  []string `json:"errors"`
}

// Skipped is the number of rejected changes.
func (r Result) Skipped() int { return len(r.Errors) }

// Applier applies change batches under a fixed policy set.
type Applier struct {
	policies policy.Set
	log      *logrus.Entry
}

// New creates an Applier. A nil log discards output.
func New(policies policy.Set, log *logrus.Entry) *Applier {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Applier{policies: policies, log: log}
}

// Validate runs structural validation on raw. A rejected batch yields a nil
// batch and the Result to report; nothing has been applied.
func (a *Applier) Validate(raw any) (*contract.Batch, Result) {
	batch, errs := contract.Parse(raw)
	if len(errs) > 0 {
		a.log.WithField("errors", len(errs)).Info("change batch rejected by structural validation")
		return nil, Result{Applied: 0, Errors: errs}
	}
	return batch, Result{Errors: []string{}}
}

// Apply validates raw and applies it through ed.
func (a *Applier) Apply(raw any, ed *prd.Editor) Result {
	batch, rejected := a.Validate(raw)
	if batch == nil {
		return rejected
	}
	return a.ApplyBatch(batch, ed)
}

// ApplyBatch applies an already validated batch.
func (a *Applier) ApplyBatch(batch *contract.Batch, ed *prd.Editor) Result {
	res := Result{Errors: []string{}}
	for i, ch := range batch.Changes {
		var msg string
		switch ch.Op {
		case contract.OpAdd:
			msg = a.add(ch, ed)
		case contract.OpUpdate:
			msg = a.update(ch, ed)
		case contract.OpLink:
			msg = a.link(ch, ed)
		default:
			msg = unsupportedOp(ch.Op)
		}

		if msg != "" {
			a.log.WithFields(logrus.Fields{
				"index":  i,
				"change": ch.ID,
				"op":     ch.Op,
			}).Debug("change skipped: " + msg)
			res.Errors = append(res.Errors, msg)
			continue
		}
		res.Applied++
	}

	a.log.WithFields(logrus.Fields{
		"changes": len(batch.Changes),
		"applied": res.Applied,
		"skipped": res.Skipped(),
	}).Info("change batch applied")
	return res
}
