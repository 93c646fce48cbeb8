package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hurou927/spam-graph/internal/graph"
	"github.com/hurou927/spam-graph/internal/source"
	"github.com/hurou927/spam-graph/internal/spam"
	"github.com/hurou927/spam-graph/internal/table"
	"github.com/hurou927/spam-graph/internal/vocab"
)

// Options controls one analysis run.
type Options struct {
	// Threshold is used for the full and spam-only component counts and
	// for picking the best spammers.
	Threshold float64
	// Sweep lists the thresholds tried on the spam-only graph.
	Sweep []float64
	// Parallelism bounds how many sweep graphs are built at once.
	Parallelism int
}

// SweepResult is the component count of the spam-only graph at one threshold.
type SweepResult struct {
	Threshold  float64
	Components int
	Edges      int
}

// Result holds every statistic of a run.
type Result struct {
	RunID string

	TotalUsers   int
	SpamUsers    int
	SpamComments int
	Spammers     []string

	Threshold          float64
	FullComponents     int
	SpamOnlyComponents int
	Sweep              []SweepResult

	// BestSpammers are the spam-only nodes of maximum degree, sorted.
	BestSpammers []string
	BestDegree   int
	// BestWords is the union of the best spammers' words, sorted.
	BestWords []string
}

// Analyzer runs the similarity-graph analysis over a comment table.
type Analyzer struct {
	opts   Options
	logger *zap.Logger
}

// New creates a new Analyzer.
func New(opts Options, logger *zap.Logger) *Analyzer {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Run analyzes t: the full population graph, the spam-only graph, a
// threshold sweep over the spam-only graph and the best spammers.
func (a *Analyzer) Run(ctx context.Context, t *table.Table) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Threshold: a.opts.Threshold}
	log := a.logger.With(zap.String("run_id", res.RunID))
	log.Info("starting analysis", zap.Int("rows", t.Len()), zap.Float64("threshold", a.opts.Threshold))

	users, words, err := vocab.Extract(t)
	if err != nil {
		return nil, fmt.Errorf("extracting vocabulary: %w", err)
	}
	res.TotalUsers = len(users)

	res.SpamUsers, res.Spammers, err = spam.FindSpam(t, users)
	if err != nil {
		return nil, fmt.Errorf("finding spammers: %w", err)
	}
	res.SpamComments, err = spam.CountSpamComments(t)
	if err != nil {
		return nil, fmt.Errorf("counting spam comments: %w", err)
	}

	full, err := graph.Build(users, words, a.opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("building full graph: %w", err)
	}
	res.FullComponents = graph.CountComponents(full.Adjacency)
	log.Info("full graph built",
		zap.Int("users", len(full.Users)), zap.Int("edges", full.Edges), zap.Int("components", res.FullComponents))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spamTable, err := source.SpamOnly(t)
	if err != nil {
		return nil, fmt.Errorf("selecting spam rows: %w", err)
	}
	spamUsers, spamWords, err := vocab.Extract(spamTable)
	if err != nil {
		return nil, fmt.Errorf("extracting spam vocabulary: %w", err)
	}

	spamGraph, err := graph.Build(spamUsers, spamWords, a.opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("building spam-only graph: %w", err)
	}
	res.SpamOnlyComponents = graph.CountComponents(spamGraph.Adjacency)
	log.Info("spam-only graph built",
		zap.Int("users", len(spamGraph.Users)), zap.Int("edges", spamGraph.Edges), zap.Int("components", res.SpamOnlyComponents))

	res.Sweep, err = a.sweep(ctx, spamUsers, spamWords, log)
	if err != nil {
		return nil, err
	}

	best := spam.BestSpammers(spamGraph.Adjacency)
	if best.Cardinality() > 0 {
		res.BestSpammers = vocab.Sorted(best)
		res.BestDegree = spamGraph.Adjacency.Degree(res.BestSpammers[0])
	}
	// Words come from everything the best spammers wrote, not only their spam.
	res.BestWords = vocab.Sorted(spam.Words(best, words))

	log.Info("analysis complete", zap.Int("best_spammers", len(res.BestSpammers)), zap.Int("best_degree", res.BestDegree))
	return res, nil
}

// sweep counts spam-only components at every sweep threshold. Graphs are
// built concurrently; they only read users and words.
func (a *Analyzer) sweep(ctx context.Context, users []string, words vocab.Vocabulary, log *zap.Logger) ([]SweepResult, error) {
	results := make([]SweepResult, len(a.opts.Sweep))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Parallelism)
	for i, th := range a.opts.Sweep {
		i, th := i, th
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sg, err := graph.Build(users, words, th)
			if err != nil {
				return fmt.Errorf("sweep threshold %v: %w", th, err)
			}
			results[i] = SweepResult{
				Threshold:  th,
				Components: graph.CountComponents(sg.Adjacency),
				Edges:      sg.Edges,
			}
			log.Debug("sweep step done",
				zap.Float64("threshold", th), zap.Int("components", results[i].Components))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
