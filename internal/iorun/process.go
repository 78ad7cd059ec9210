package iorun

import (
	"context"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/plet"
	"golang.org/x/sync/errgroup"
)

type job struct {
	idx    int
	record field.Record
}

type done struct {
	idx    int
	result plet.Result
}

// Process runs every record through the calculator with the given number
// of workers. Results keep the order of records. The progress bar is
// optional.
func Process(
	ctx context.Context,
	calc *plet.Calculator,
	recs []field.Record,
	jobs int,
	bar *pb.ProgressBar,
) ([]plet.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chIn := make(chan job)
	chOut := make(chan done)
	res := make([]plet.Result, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range max(jobs, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return worker(ctx, calc, chIn, chOut)
		})
	}

	g.Go(func() error {
		for d := range chOut {
			res[d.idx] = d.result
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		for i, r := range recs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- job{idx: i, record: r}:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func worker(
	ctx context.Context,
	calc *plet.Calculator,
	chIn <-chan job,
	chOut chan<- done,
) error {
	for j := range chIn {
		d := done{idx: j.idx, result: calc.Calculate(j.record)}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- d:
		}
	}
	return nil
}
