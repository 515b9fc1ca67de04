package core

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/csvio"
	"github.com/madlig/mygameon/schema"
)

// normalizeRecord normalizes the tags of a single row.
func normalizeRecord(row csvio.Row) schema.TagResult {
	return schema.TagResult{
		ObjectID: row.ObjectID,
		Name:     row.Name,
		RawTags:  row.Tags,
		Genre:    row.Genre,
		Tags:     algo.NormalizeTags(row.Tags, row.Genre, row.Name),
	}
}

// normalizeRows processes all rows in parallel using a worker pool.
// Results keep the order of rows. Rows not reached before ctx is done
// are left out.
func normalizeRows(ctx context.Context, workers int, rows []csvio.Row) []schema.TagResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, len(rows))
	results := make([]schema.TagResult, len(rows))
	done := make([]bool, len(rows))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = normalizeRecord(rows[i])
				done[i] = true
			}
		})
	}

	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := results[:0]
	for i, r := range results {
		if done[i] {
			out = append(out, r)
		}
	}
	return out
}

// logHeader prints a one-line progress header to stderr.
func logHeader(cfg *contract.Config, action string, records int) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "🏷️  "
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s%s %d records with %d workers\n", prefix, action, records, cfg.Workers)
}
