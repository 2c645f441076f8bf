package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-ringqueue/pkg/datastructs/queue"
)

const maxLineSize = 1 << 20

// source is one named input.
type source struct {
	name string
	open func() (io.ReadCloser, error)
}

func fileSource(path string) source {
	return source{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

func readerSource(name string, r io.Reader) source {
	return source{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

type tailResult struct {
	lines   *queue.Ring[string]
	read    int
	dropped uint64
}

type tailer struct {
	capacity int
	log      *zap.Logger
}

// tail keeps the last t.capacity lines of r.
// The ring gets no logger: drops are reported once per source by run.
func (t *tailer) tail(ctx context.Context, r io.Reader) (*tailResult, error) {
	ring, err := queue.New[string](t.capacity)
	if err != nil {
		return nil, err
	}

	res := &tailResult{lines: ring}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ring.Put(sc.Text())
		res.read++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	res.dropped = ring.Evictions()
	return res, nil
}

// run tails every source concurrently and writes the results in order.
// Headers are printed when there is more than one source.
func (t *tailer) run(ctx context.Context, w io.Writer, sources []source) error {
	results := make([]*tailResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			rc, err := src.open()
			if err != nil {
				return errors.Wrapf(err, "failed to open %s", src.name)
			}
			defer rc.Close()

			res, err := t.tail(ctx, rc)
			if err != nil {
				return errors.Wrapf(err, "tail %s", src.name)
			}
			results[i] = res

			t.log.Debug("tail complete",
				zap.String("source", src.name),
				zap.Int("lines", res.read),
				zap.Uint64("dropped", res.dropped),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i, res := range results {
		if len(sources) > 1 {
			if i > 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "==> %s <==\n", sources[i].name)
		}
		for {
			line, err := res.lines.Get()
			if errors.Is(err, queue.ErrEmpty) {
				break
			}
			fmt.Fprintln(bw, line)
		}
	}
	return bw.Flush()
}
