package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/softshop/pkg/slug"
)

const (
	defaultMaxAttempts = 10000

	// A storage-level conflict is retried once with a fresh uniqueness check.
	conflictRetries = 1

	fallbackPrefix    = "product"
	fallbackSuffixLen = 6
)

// SlugAssigner computes unique product slugs and backfills missing ones.
//
// Uniqueness is check-then-write without locking. Two concurrent writers can
// pick the same candidate; the store's unique index rejects the second
// write, which then gets one retry.
type SlugAssigner struct {
	store       SlugStore
	translit    slug.Transliterator
	logger      *slog.Logger
	now         func() time.Time
	maxAttempts int
}

// AssignerOption configures a SlugAssigner.
type AssignerOption func(*SlugAssigner)

// WithTransliterator replaces the default pinyin transliterator.
func WithTransliterator(t slug.Transliterator) AssignerOption {
	return func(a *SlugAssigner) {
		if t != nil {
			a.translit = t
		}
	}
}

// WithMaxAttempts caps the number of uniqueness probes per slug.
func WithMaxAttempts(n int) AssignerOption {
	return func(a *SlugAssigner) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithAssignerLogger sets the logger for fallbacks and backfill progress.
func WithAssignerLogger(l *slog.Logger) AssignerOption {
	return func(a *SlugAssigner) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock sets the time source used when a fallback suffix cannot be
// taken from the product id.
func WithClock(now func() time.Time) AssignerOption {
	return func(a *SlugAssigner) {
		if now != nil {
			a.now = now
		}
	}
}

// NewSlugAssigner creates an assigner over store.
func NewSlugAssigner(store SlugStore, opts ...AssignerOption) *SlugAssigner {
	a := &SlugAssigner{
		store:       store,
		translit:    slug.NewPinyin(),
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssignSlugForName returns a slug that no product other than productID holds.
// A non-blank preferred slug is only normalized; otherwise name is
// transliterated first. Nothing is persisted.
func (a *SlugAssigner) AssignSlugForName(ctx context.Context, productID, name, preferred string) (string, error) {
	return a.resolveUnique(ctx, a.baseSlug(ctx, productID, name, preferred), productID)
}

// AssignAndStore derives a slug from name and persists it for productID.
func (a *SlugAssigner) AssignAndStore(ctx context.Context, productID, name string) (string, error) {
	return a.storeUnique(ctx, productID, a.baseSlug(ctx, productID, name, ""))
}

// ReassignSlug replaces the slug of an existing product with preferred,
// normalized and made unique against every other product.
func (a *SlugAssigner) ReassignSlug(ctx context.Context, productID, preferred string) (string, error) {
	base := slug.Normalize(preferred)
	if base == "" {
		return "", fmt.Errorf("%w: slug %q has no usable characters", ErrInvalidInput, preferred)
	}
	return a.storeUnique(ctx, productID, base)
}

func (a *SlugAssigner) baseSlug(ctx context.Context, productID, name, preferred string) string {
	var base string
	if p := strings.TrimSpace(preferred); p != "" {
		base = slug.Normalize(p)
	} else {
		base = a.transliterate(ctx, name)
	}

	if base == "" {
		base = a.fallback(productID)
		a.logger.DebugContext(ctx, "empty slug base, using fallback",
			slog.String("product_id", productID),
			slog.String("slug", base),
		)
	}
	return base
}

func (a *SlugAssigner) transliterate(ctx context.Context, name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return ""
	}

	tokens, err := a.translit.Transliterate(lower)
	if err != nil {
		a.logger.WarnContext(ctx, "transliteration failed, using raw name",
			slog.String("name", name),
			slog.Any("error", err),
		)
		tokens = []string{lower}
	}
	return slug.Normalize(tokens...)
}

// fallback builds "product-<suffix>" from the tail of the id, or from the
// clock when the id has no alphanumerics.
func (a *SlugAssigner) fallback(productID string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(productID) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	suffix := b.String()
	if len(suffix) > fallbackSuffixLen {
		suffix = suffix[len(suffix)-fallbackSuffixLen:]
	}
	if suffix == "" {
		suffix = strconv.FormatInt(a.now().UnixMilli(), 36)
	}
	return fallbackPrefix + slug.Separator + suffix
}

// resolveUnique probes base, base-1, base-2, ... and returns the first
// candidate that is free or already owned by productID.
func (a *SlugAssigner) resolveUnique(ctx context.Context, base, productID string) (string, error) {
	candidate := base
	for counter := 1; counter <= a.maxAttempts; counter++ {
		owner, err := a.store.FindBySlug(ctx, candidate)
		switch {
		case errors.Is(err, ErrNotFound):
			return candidate, nil
		case err != nil:
			return "", unavailable(err)
		case owner == nil, productID != "" && owner.ID == productID:
			return candidate, nil
		}
		candidate = base + slug.Separator + strconv.Itoa(counter)
	}

	return "", fmt.Errorf("%w: %q after %d attempts", ErrUniquenessExhausted, base, a.maxAttempts)
}

func (a *SlugAssigner) storeUnique(ctx context.Context, productID, base string) (string, error) {
	var conflict error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		candidate, err := a.resolveUnique(ctx, base, productID)
		if err != nil {
			return "", err
		}

		err = a.store.AssignSlug(ctx, productID, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrSlugConflict) {
			return "", err
		}

		conflict = err
		a.logger.WarnContext(ctx, "slug taken concurrently",
			slog.String("product_id", productID),
			slog.String("slug", candidate),
			slog.Int("attempt", attempt+1),
		)
	}
	return "", conflict
}

func unavailable(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return errors.Join(ErrStoreUnavailable, err)
}
