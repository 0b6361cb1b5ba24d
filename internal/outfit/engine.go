// internal/outfit/engine.go
package outfit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCatalog   = errors.New("catalog has no usable products")
	ErrInvalidProfile = errors.New("invalid user profile")
)

const (
	DefaultTemperature       = 0.8
	DefaultCompletionTimeout = 60 * time.Second
)

type Config struct {
	BatchSize         int
	MaxPoolSize       int
	MinInventory      int
	Temperature       float64
	CompletionTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatchSize:         DefaultBatchSize,
		MaxPoolSize:       DefaultMaxPoolSize,
		MinInventory:      DefaultMinInventory,
		Temperature:       DefaultTemperature,
		CompletionTimeout: DefaultCompletionTimeout,
	}
}

type GenerateRequest struct {
	Catalog  []Product
	Profile  UserProfile
	Feedback []Feedback
}

type Result struct {
	Success  bool             `json:"success"`
	Outfits  []EnrichedOutfit `json:"outfits"`
	Warnings []string         `json:"warnings,omitempty"`
	Repair   RepairReport     `json:"repair"`
}

// Engine runs score -> select -> request -> repair -> enrich for one request.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	cfg       Config
	requestor *Requestor
	imageOK   func(Product) bool
	log       logrus.FieldLogger
}

func NewEngine(cfg Config, completer Completer, log logrus.FieldLogger) *Engine {
	def := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxPoolSize <= 0 {
		cfg.MaxPoolSize = def.MaxPoolSize
	}
	if cfg.MinInventory <= 0 {
		cfg.MinInventory = def.MinInventory
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = def.CompletionTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		cfg:       cfg,
		requestor: NewRequestor(completer, cfg.Temperature, cfg.CompletionTimeout),
		imageOK:   HasValidImage,
		log:       log,
	}
}

func (e *Engine) Config() Config { return e.cfg }

// Prepare scores and selects candidates without calling the completion
// service.
func (e *Engine) Prepare(ctx context.Context, catalog []Product, profile UserProfile) (Selection, error) {
	if err := ValidateProfile(profile); err != nil {
		return Selection{}, err
	}

	byCategory := make(map[Category][]Product, len(Categories))
	for _, p := range catalog {
		if p.Category.Valid() {
			byCategory[p.Category] = append(byCategory[p.Category], p)
		}
	}

	scored := make([][]Product, len(Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range Categories {
		i, products := i, byCategory[c]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = ScoreAll(products, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Selection{}, err
	}

	var all []Product
	for _, list := range scored {
		all = append(all, list...)
	}

	sel := Select(all, e.imageOK, SelectOptions{
		MaxPoolSize:  e.cfg.MaxPoolSize,
		MinInventory: e.cfg.MinInventory,
	})
	// A missing category is only low inventory; its slots become
	// placeholders during enrichment.
	for _, c := range Categories {
		if len(sel.Lists[c]) > 0 {
			return sel, nil
		}
	}
	return sel, fmt.Errorf("%w: no product with a valid image", ErrEmptyCatalog)
}

// Generate runs the full pipeline. Hard failures are returned as errors;
// unresolvable references degrade to per-outfit fallbacks.
func (e *Engine) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	start := time.Now()
	log := e.log.WithFields(logrus.Fields{
		"occasion":   req.Profile.Occasion,
		"catalog":    len(req.Catalog),
		"batch_size": e.cfg.BatchSize,
	})

	sel, err := e.Prepare(ctx, req.Catalog, req.Profile)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, c := range sel.LowInventory {
		msg := fmt.Sprintf("low inventory: only %d %s products with valid images", len(sel.Lists[c]), c)
		warnings = append(warnings, msg)
		log.WithField("category", c).Warn("Low inventory for outfit generation")
	}

	proposals, err := e.requestor.Request(ctx, sel.Pool, req.Profile, req.Feedback, e.cfg.BatchSize)
	if err != nil {
		log.WithError(err).Error("Outfit completion failed")
		return nil, err
	}

	repaired, report := Repair(proposals, sel.Pool)
	if report.Duplicates > 0 {
		log.WithFields(logrus.Fields{
			"duplicates": report.Duplicates,
			"replaced":   report.Replaced,
			"unresolved": report.Unresolved,
		}).Warn("Repaired duplicate products in generated outfits")
	}

	outfits := EnrichAll(repaired, NewLookup(sel.Lists), req.Profile, report)
	fallbacks := 0
	for _, o := range outfits {
		if o.Fallback {
			fallbacks++
		}
	}
	if fallbacks > 0 {
		log.WithField("fallbacks", fallbacks).Warn("Some outfits were synthesized from fallback products")
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Outfits generated")

	return &Result{
		Success:  true,
		Outfits:  outfits,
		Warnings: warnings,
		Repair:   report,
	}, nil
}

// ValidateProfile rejects budgets that cannot be satisfied.
func ValidateProfile(p UserProfile) error {
	r := p.PriceRange
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: negative price bound", ErrInvalidProfile)
	}
	if !r.IsUnlimited && r.Max < r.Min {
		return fmt.Errorf("%w: price max %.2f below min %.2f", ErrInvalidProfile, r.Max, r.Min)
	}
	return nil
}
