// Package pipeline fetches raw Gmail messages, runs them through the
// parser, and applies the rule set: sort newest first, drop excluded
// senders, count categories and rule tags, annotate matches.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"google.golang.org/api/gmail/v1"

	"github.com/sarthakds/admitdesk/parser"
	"github.com/sarthakds/admitdesk/rules"
)

// Fetcher is the slice of the Gmail client the pipeline needs.
type Fetcher interface {
	ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error)
	GetMessage(ctx context.Context, id string) (*gmail.Message, error)
}

// RuleSource provides the stored rule set. Rule errors are degraded to
// an empty set; a broken rule store must not take down the fetch cycle.
type RuleSource interface {
	List(ctx context.Context) ([]rules.Rule, error)
}

// Stats summarizes one fetch cycle over the full (pre-exclusion) set.
// Shortlists counts both call_letter and shortlist emails, matching the
// dashboard's summary cards.
type Stats struct {
	Total      int
	Interviews int
	Tests      int
	Shortlists int
	TagCounts  map[string]int
}

// Result is one complete fetch cycle: the displayable emails, newest
// first with exclusions dropped and rule tags set, plus the stats.
type Result struct {
	Emails []parser.Email
	Stats  Stats
}

type Orchestrator struct {
	fetcher Fetcher
	rules   RuleSource
	logger  *log.Logger
	query   string
	workers int
}

func New(fetcher Fetcher, ruleSource RuleSource, logger *log.Logger, query string, workers int) *Orchestrator {
	if workers < 1 {
		workers = 4
	}
	return &Orchestrator{
		fetcher: fetcher,
		rules:   ruleSource,
		logger:  logger,
		query:   query,
		workers: workers,
	}
}

// FetchCycle runs one fetch pass: list up to max matching messages,
// fetch and parse them concurrently, sort by received date descending,
// then apply the rule set. Individual message failures are logged and
// skipped; only a failed list call fails the cycle.
func (o *Orchestrator) FetchCycle(ctx context.Context, max int64) (*Result, error) {
	ids, err := o.fetcher.ListMessageIDs(ctx, o.query, max)
	if err != nil {
		return nil, fmt.Errorf("fetch cycle: %w", err)
	}

	emails := o.parseAll(ctx, ids)
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Date.After(emails[j].Date)
	})

	active := o.activeRules(ctx)
	stats := computeStats(emails, active)

	kept := lo.Filter(emails, func(e parser.Email, _ int) bool {
		return !rules.ExcludedBy(e, active)
	})
	for i := range kept {
		kept[i].Tags = tagsFor(kept[i], active)
	}

	o.logger.Info("fetch cycle complete",
		"fetched", len(emails), "kept", len(kept), "rules", len(active))
	return &Result{Emails: kept, Stats: stats}, nil
}

// parseAll fetches and parses the messages with bounded concurrency.
// Each message is independent, so order is restored by index rather
// than by completion.
func (o *Orchestrator) parseAll(ctx context.Context, ids []string) []parser.Email {
	parsed := make([]*parser.Email, len(ids))
	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			msg, err := o.fetcher.GetMessage(ctx, id)
			if err != nil {
				o.logger.Warn("skipping message", "id", id, "error", err)
				return
			}
			e := parser.Parse(msg)
			parsed[i] = &e
		}(i, id)
	}
	wg.Wait()

	emails := make([]parser.Email, 0, len(ids))
	for _, e := range parsed {
		if e != nil {
			emails = append(emails, *e)
		}
	}
	return emails
}

func (o *Orchestrator) activeRules(ctx context.Context) []rules.Rule {
	rs, err := o.rules.List(ctx)
	if err != nil {
		o.logger.Warn("loading rules, continuing without", "error", err)
		return nil
	}
	return lo.Filter(rs, func(r rules.Rule, _ int) bool { return r.IsActive })
}

// computeStats counts over the sorted pre-exclusion set: the summary
// cards report what arrived, not what survived filtering.
func computeStats(emails []parser.Email, active []rules.Rule) Stats {
	stats := Stats{
		Total: len(emails),
		Interviews: lo.CountBy(emails, func(e parser.Email) bool {
			return e.Type == parser.TypeInterview
		}),
		Tests: lo.CountBy(emails, func(e parser.Email) bool {
			return e.Type == parser.TypeTest
		}),
		Shortlists: lo.CountBy(emails, func(e parser.Email) bool {
			return e.Type == parser.TypeCallLetter || e.Type == parser.TypeShortlist
		}),
		TagCounts: map[string]int{},
	}
	for _, r := range active {
		if r.Tag == "" {
			continue
		}
		for _, e := range emails {
			if rules.Matches(e, r) {
				stats.TagCounts[r.Tag]++
			}
		}
	}
	return stats
}

func tagsFor(e parser.Email, active []rules.Rule) []string {
	var tags []string
	for _, r := range active {
		if r.Tag != "" && rules.Matches(e, r) {
			tags = append(tags, r.Tag)
		}
	}
	return lo.Uniq(tags)
}

// Monitor runs FetchCycle on a ticker and pushes each result to out,
// closing it when ctx is cancelled. The first cycle runs after
// initialDelay with initialCount messages; later cycles poll pollCount
// and only push when the newest message changed, so the UI is not
// redrawn for identical inboxes. Fetch failures are logged and retried
// on the next tick.
func (o *Orchestrator) Monitor(ctx context.Context, out chan<- Result,
	initialDelay, interval time.Duration, initialCount, pollCount int64,
) {
	defer close(out)

	select {
	case <-ctx.Done():
		return
	case <-time.After(initialDelay):
	}

	first := true
	lastNewestID := ""
	cycle := func(max int64) {
		res, err := o.FetchCycle(ctx, max)
		if err != nil {
			o.logger.Error("fetch cycle failed", "error", err)
			return
		}
		newestID := ""
		if len(res.Emails) > 0 {
			newestID = res.Emails[0].ID
		}
		if !first && newestID == lastNewestID {
			o.logger.Debug("no new messages", "newest", newestID)
			return
		}
		first = false
		lastNewestID = newestID
		select {
		case out <- *res:
		case <-ctx.Done():
		}
	}

	cycle(initialCount)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			o.logger.Info("monitor stopping")
			return
		case <-ticker.C:
			cycle(pollCount)
		}
	}
}
