package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/softshop/pkg/slug"
)

// CreateProductInput holds the fields accepted when a product is created.
// Slug is an optional explicit override.
type CreateProductInput struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug,omitempty"`
	Subtitle      string  `json:"subtitle,omitempty"`
	Description   string  `json:"description,omitempty"`
	CPSLink       string  `json:"cps_link"`
	DownloadURL   string  `json:"download_url,omitempty"`
	CoverImage    string  `json:"cover_image,omitempty"`
	Logo          string  `json:"logo,omitempty"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	SalePrice     float64 `json:"sale_price,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// Service implements product creation, lookup and slug changes.
type Service struct {
	store    Store
	assigner *SlugAssigner
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides the product id generator.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithServiceClock overrides the timestamp source for new products.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a catalog service.
func NewService(store Store, assigner *SlugAssigner, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		assigner: assigner,
		logger:   slog.New(slog.DiscardHandler),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProduct validates input, assigns a unique slug and persists the product.
// A slug race lost at insert time is retried once before ErrSlugUnavailable
// is returned.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	cps := strings.TrimSpace(in.CPSLink)
	if name == "" || cps == "" {
		return nil, fmt.Errorf("%w: name and cps_link are required", ErrInvalidInput)
	}

	now := s.now().UTC()
	p := &Product{
		ID:            s.newID(),
		Name:          name,
		Subtitle:      strings.TrimSpace(in.Subtitle),
		Description:   in.Description,
		CPSLink:       cps,
		DownloadURL:   strings.TrimSpace(in.DownloadURL),
		CoverImage:    strings.TrimSpace(in.CoverImage),
		Logo:          strings.TrimSpace(in.Logo),
		OriginalPrice: in.OriginalPrice,
		SalePrice:     in.SalePrice,
		IsActive:      in.IsActive == nil || *in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var conflict error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		sl, err := s.assigner.AssignSlugForName(ctx, p.ID, p.Name, in.Slug)
		if err != nil {
			return nil, slugUnavailable(err)
		}
		p.Slug = sl

		err = s.store.Create(ctx, p)
		if err == nil {
			s.logger.InfoContext(ctx, "product created",
				slog.String("product_id", p.ID),
				slog.String("slug", p.Slug),
			)
			return p, nil
		}
		if !errors.Is(err, ErrSlugConflict) {
			return nil, err
		}

		conflict = err
		s.logger.WarnContext(ctx, "slug taken during create",
			slog.String("product_id", p.ID),
			slog.String("slug", sl),
			slog.Int("attempt", attempt+1),
		)
	}
	return nil, errors.Join(ErrSlugUnavailable, conflict)
}

// ProductBySlug returns the active product published under slug and counts the view.
// Malformed, unknown and inactive slugs all yield ErrNotFound.
func (s *Service) ProductBySlug(ctx context.Context, sl string) (*Product, error) {
	if !slug.Valid(sl) {
		return nil, ErrNotFound
	}

	p, err := s.store.FindBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrNotFound
	}

	if err := s.store.IncrementViews(ctx, p.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to count product view",
			slog.String("product_id", p.ID),
			slog.Any("error", err),
		)
	} else {
		p.ViewCount++
	}
	return p, nil
}

// ChangeSlug moves a product to a new slug. The old slug is released and
// no redirect is kept.
func (s *Service) ChangeSlug(ctx context.Context, productID, preferred string) (string, error) {
	if strings.TrimSpace(productID) == "" {
		return "", fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}

	sl, err := s.assigner.ReassignSlug(ctx, productID, preferred)
	if err != nil {
		return "", slugUnavailable(err)
	}

	s.logger.InfoContext(ctx, "product slug changed",
		slog.String("product_id", productID),
		slog.String("slug", sl),
	)
	return sl, nil
}

func slugUnavailable(err error) error {
	if errors.Is(err, ErrUniquenessExhausted) || errors.Is(err, ErrSlugConflict) {
		return errors.Join(ErrSlugUnavailable, err)
	}
	return err
}
