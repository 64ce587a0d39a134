// Package recovery runs secret reconstruction tasks, one per share document,
// from loading the document to combining its shares.
package recovery

import (
	"context"
	"fmt"
	"math/big"

	"github.com/cloudflare/cfssl/log"

	"github.com/Pro7ech/sss/lagrange"
	"github.com/Pro7ech/sss/share"
	"github.com/Pro7ech/sss/storage"
	"github.com/Pro7ech/sss/utils/bignum"
	"github.com/Pro7ech/sss/utils/concurrency"
)

// Config is the configuration of a [Recoverer].
type Config struct {
	// Mode is the division mode of the interpolation.
	Mode lagrange.Mode
	// Verify enables the check that the shares left out of the
	// reconstruction lie on the interpolated polynomial.
	Verify bool
	// Workers is the number of documents processed concurrently.
	// Values smaller than 2 process the documents one after the other.
	Workers int
}

// Result is the outcome of a successful task.
type Result struct {
	// Source is the location of the share document.
	Source string
	Params share.Params
	Secret *big.Int
}

// Recoverer reconstructs the secrets of share documents.
type Recoverer struct {
	cfg      Config
	backend  storage.Backend
	combiner *lagrange.Combiner
}

// New creates a new Recoverer loading documents from backend.
func New(cfg Config, backend storage.Backend) *Recoverer {
	return &Recoverer{
		cfg:      cfg,
		backend:  backend,
		combiner: lagrange.NewCombiner(cfg.Mode),
	}
}

// Recover reconstructs the secret of the document at source.
// Errors are prefixed with source and keep their kind, e.g.
// [share.ErrMalformedInput] or [lagrange.ErrInsufficientShares].
func (r *Recoverer) Recover(ctx context.Context, source string) (res *Result, err error) {

	data, err := r.backend.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	format := share.FormatFromPath(source)

	log.Debugf("%s: loaded %d bytes, decoding as %s", source, len(data), format)

	set, err := share.DecodeBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	log.Debugf("%s: decoded %d shares, n=%d k=%d", source, set.Len(), set.N, set.K)

	if set.Len() != set.N {
		log.Warningf("%s: document declares n=%d but holds %d shares", source, set.N, set.Len())
	}

	if r.cfg.Verify {
		if err = lagrange.Verify(set.Shares, set.K); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		log.Debugf("%s: %d remaining shares are consistent", source, max(set.Len()-set.K, 0))
	}

	secret, err := r.combiner.Combine(set.Shares, set.K)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	log.Debugf("%s: recovered secret with %s interpolation, log2|secret|=%.2f", source, r.combiner.Mode(), bignum.Log2(secret))

	return &Result{Source: source, Params: set.Params, Secret: secret}, nil
}

// RecoverAll reconstructs the secrets of the documents at sources and calls
// emit with each result, in the order of sources. The first failure halts
// the batch: emit is not called for the failed document nor for any
// document after it, and the error is returned.
//
// With cfg.Workers > 1 documents are processed concurrently and results
// are emitted once all running tasks have finished.
func (r *Recoverer) RecoverAll(ctx context.Context, sources []string, emit func(res *Result)) (err error) {

	if r.cfg.Workers < 2 {
		for _, source := range sources {
			var res *Result
			if res, err = r.Recover(ctx, source); err != nil {
				return
			}
			emit(res)
		}
		return
	}

	workers := make([]int, min(r.cfg.Workers, len(sources)))
	for i := range workers {
		workers[i] = i
	}

	if len(workers) == 0 {
		return
	}

	results := make([]*Result, len(sources))
	errs := make([]error, len(sources))

	rm := concurrency.NewResourceManager(workers)

	for i, source := range sources {
		rm.Run(func(worker int) (err error) {
			log.Debugf("worker %d: %s", worker, source)
			results[i], errs[i] = r.Recover(ctx, source)
			return errs[i]
		})
	}

	err = rm.Wait()

	for i := range sources {
		if errs[i] != nil {
			return errs[i]
		}
		if results[i] == nil {
			// skipped after a failure
			return
		}
		emit(results[i])
	}

	return
}
