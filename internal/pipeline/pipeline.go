package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"nhmmerx/internal/fasta"
	"nhmmerx/internal/header"
	"nhmmerx/internal/hits"
	"nhmmerx/internal/logger"
	"nhmmerx/internal/tblout"
	"nhmmerx/internal/writers"
)

// HitSource yields hits in report order and io.EOF at the end.
type HitSource interface {
	Next() (tblout.Hit, error)
}

// Fetcher returns FASTA text for one range query.
type Fetcher interface {
	FetchRange(ctx context.Context, q hits.RangeQuery) ([]byte, error)
}

// Config controls hit selection and naming.
type Config struct {
	Threshold float64 // keep hits with E-value <= Threshold
	SpeciesID string  // optional prefix for rewritten names
}

// Stats summarizes a run.
type Stats struct {
	Hits         int // data lines read
	Kept         int // hits that passed the threshold
	Records      int // records handed to send
	EmptyFetches int // kept hits whose fetch returned no records
}

// Run drives src to exhaustion. It returns the first error from any stage,
// including ctx cancellation between hits; there is no skip-and-continue.
func Run(ctx context.Context, cfg Config, src HitSource, store Fetcher, send func(writers.Record) error) (Stats, error) {
	log := logger.FromContext(ctx)
	var st Stats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		h, err := src.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st.Hits++
		if !hits.Keep(h, cfg.Threshold) {
			continue
		}
		st.Kept++

		q := hits.NewRangeQuery(h)
		raw, err := store.FetchRange(ctx, q)
		if err != nil {
			return st, err
		}
		n, err := emitFetched(raw, cfg.SpeciesID, h.EValue, send)
		st.Records += n
		if err != nil {
			return st, fmt.Errorf("hit %s (line %d): %w", q, h.Line, err)
		}
		if n == 0 {
			st.EmptyFetches++
			log.Warn("no sequence extracted", "target", q.Target, "range", q.Range)
		}
	}
}

func emitFetched(raw []byte, species string, evalue float64, send func(writers.Record) error) (int, error) {
	n := 0
	err := fasta.ParseRecords(raw, func(r fasta.Record) error {
		rec := writers.Record{
			Name:        header.Rewrite(species, evalue, r.Name),
			Description: r.Description,
			Seq:         r.Seq,
		}
		if err := send(rec); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
