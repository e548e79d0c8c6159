package core

import (
	"context"
	"time"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// fetchComplexities resolves the diff complexity for each merge request,
// cheapest source first: the result cache, then the changes endpoint in
// rate-limited batches. A failed fetch degrades that one change to the
// estimated default instead of failing the whole run.
func (a *Analyzer) fetchComplexities(ctx context.Context, mrs []schema.MergeRequest) (map[int]schema.MRComplexity, error) {
	out := make(map[int]schema.MRComplexity, len(mrs))

	var misses []schema.MergeRequest
	for _, mr := range mrs {
		key := complexityKey(a.cfg.Project, mr.IID)
		want := cacheEnvelope{Kind: schema.ComplexityCache, Project: a.cfg.Project}
		var cx schema.MRComplexity
		if a.cache.lookup(key, want, &cx) && cx.IID == mr.IID {
			out[mr.IID] = cx
			continue
		}
		misses = append(misses, mr)
	}

	err := a.inBatches(ctx, len(misses), func(i int) {
		mr := misses[i]
		changes, err := a.client.GetChanges(ctx, a.cfg.Project, mr.IID)
		if err != nil {
			out[mr.IID] = DefaultComplexity(mr.IID)
			return
		}
		cx := ComplexityFromChanges(mr.IID, changes)
		out[mr.IID] = cx
		a.cache.save(complexityKey(a.cfg.Project, mr.IID),
			cacheEnvelope{Kind: schema.ComplexityCache, Project: a.cfg.Project}, cx)
	})
	return out, err
}

// fetchNotes fetches the note list for each merge request in batches.
// A failed fetch leaves that change without notes.
func (a *Analyzer) fetchNotes(ctx context.Context, mrs []schema.MergeRequest) (map[int][]schema.Note, error) {
	out := make(map[int][]schema.Note, len(mrs))
	err := a.inBatches(ctx, len(mrs), func(i int) {
		mr := mrs[i]
		notes, err := a.client.ListNotes(ctx, a.cfg.Project, mr.IID)
		if err != nil {
			return
		}
		out[mr.IID] = notes
	})
	return out, err
}

// inBatches runs fn for each index in small groups with a pause between
// groups, so a large project does not hammer the source API. It stops
// early when the context is canceled.
func (a *Analyzer) inBatches(ctx context.Context, n int, fn func(i int)) error {
	size := a.cfg.BatchSize
	if size <= 0 {
		size = contract.DefaultBatchSize
	}
	delay := a.cfg.BatchDelay

	for start := 0; start < n; start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := start; i < min(start+size, n); i++ {
			fn(i)
		}
		if delay > 0 && start+size < n {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil
}
