package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"leximap/internal/models"
)

var (
	wordLookupDesc = prometheus.NewDesc(
		"leximap_word_lookups_total",
		"Total lexeme lookup count by word and outcome",
		[]string{"word", "outcome"},
		nil,
	)

	lexemeLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leximap_lexeme_lookups_total",
		Help: "Lexemes assembled, by whether the lexicon resolved any sense",
	}, []string{"outcome"})

	relationFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leximap_relation_fetches_total",
		Help: "Relation service requests by relation kind and outcome",
	}, []string{"relation", "outcome"})

	relationsUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "leximap_relations_up",
		Help: "Whether the last probe reached the relation service (1) or not (0)",
	})
)

// WordLookupStore persists per-word lookup counts.
type WordLookupStore interface {
	IncrementWordLookup(ctx context.Context, word, outcome string) error
	GetAllWordLookups(ctx context.Context) ([]models.WordLookup, error)
}

// WordCollector is a custom Prometheus collector that reads word lookup
// counts from the store on each scrape.
type WordCollector struct {
	store WordLookupStore
}

// Describe sends the metric descriptor to the channel.
func (c *WordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- wordLookupDesc
}

// Collect queries the store for all word lookups and emits them as counters.
func (c *WordCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.store.GetAllWordLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect word lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			wordLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Word,
			l.Outcome,
		)
	}
}

// Recorder provides async word lookup recording.
type Recorder struct {
	store WordLookupStore
}

var (
	recorder *Recorder
	initOnce sync.Once
)

// Init registers the collectors. store may be nil, in which case per-word
// counts are not persisted. Must be called once at startup.
func Init(store WordLookupStore) {
	initOnce.Do(func() {
		prometheus.MustRegister(lexemeLookups, relationFetches, relationsUp)
		if store != nil {
			recorder = &Recorder{store: store}
			prometheus.MustRegister(&WordCollector{store: store})
		}
	})
}

// RecordLexemeLookup counts an assembled lexeme and, when a store is
// configured, asynchronously persists the per-word outcome.
func RecordLexemeLookup(word, outcome string) {
	lexemeLookups.WithLabelValues(outcome).Inc()

	r := recorder
	if r == nil {
		return
	}
	go func() {
		if err := r.store.IncrementWordLookup(context.Background(), word, outcome); err != nil {
			slog.Error("failed to record word lookup", "word", word, "outcome", outcome, "error", err)
		}
	}()
}

// RecordRelationFetch counts one relation service request.
func RecordRelationFetch(relation, outcome string) {
	relationFetches.WithLabelValues(relation, outcome).Inc()
}

// SetRelationsUp records the latest probe result.
func SetRelationsUp(up bool) {
	if up {
		relationsUp.Set(1)
		return
	}
	relationsUp.Set(0)
}
