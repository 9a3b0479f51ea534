package refine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the per-document output record of a batch run.
type BatchItem struct {
	DocumentID uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Result     Result    `json:"result"`
	Degraded   bool      `json:"degraded"`
}

// ReadInputs decodes a stream of newline-delimited JSON input records.
func ReadInputs(r io.Reader) ([]Input, error) {
	var inputs []Input

	dec := json.NewDecoder(r)
	for {
		var in Input
		if err := dec.Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return inputs, nil
			}
			return nil, fmt.Errorf("decode input %d: %w", len(inputs)+1, err)
		}
		inputs = append(inputs, in)
	}
}

// WriteItems encodes batch items as newline-delimited JSON, in order.
func WriteItems(w io.Writer, items []BatchItem) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode output %s: %w", item.DocumentID, err)
		}
	}
	return nil
}

// ProcessBatch refines a batch of documents with at most workers running
// concurrently. Output order matches input order. Individual documents
// never fail the batch; only context cancellation stops it early.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []Input, workers int) ([]BatchItem, error) {
	items := make([]BatchItem, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out := p.Process(ctx, in)
			items[i] = BatchItem{
				DocumentID: in.DocumentID,
				Name:       in.Name,
				Result:     out.Result,
				Degraded:   out.Degraded,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
