package catalog_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/softshop/internal/catalog"
)

// memStore is an in-memory catalog.Store with failure injection.
type memStore struct {
	products map[string]*catalog.Product
	order    []string

	findErr      error
	listErr      error
	incrementErr error
	assignErr    map[string]error
	onAssign     func(id string)
	onList       func(ctx context.Context) error
	// nilFinds makes FindBySlug return (nil, nil) for every slug.
	nilFinds bool

	// staleFinds makes the next N FindBySlug calls report every slug free.
	staleFinds int
	// createConflicts makes the next N Create calls fail with ErrSlugConflict.
	createConflicts int
	// unavailableAfter makes AssignSlug fail once it has been called more often.
	unavailableAfter int

	assignCalls int
	findCalls   int
	mu          sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*catalog.Product),
		assignErr: make(map[string]error),
	}
}

func (m *memStore) add(id, name, slug string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[id] = &catalog.Product{ID: id, Name: name, Slug: slug, IsActive: true}
	m.order = append(m.order, id)
}

func (m *memStore) get(id string) catalog.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.products[id]
}

func (m *memStore) holder(slug string) *catalog.Product {
	for _, id := range m.order {
		if p := m.products[id]; p.Slug != "" && p.Slug == slug {
			return p
		}
	}
	return nil
}

func (m *memStore) FindBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.nilFinds {
		return nil, nil
	}
	if m.staleFinds > 0 {
		m.staleFinds--
		return nil, catalog.ErrNotFound
	}
	p := m.holder(slug)
	if p == nil {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListMissingSlug(ctx context.Context) ([]catalog.SlugCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.onList != nil {
		if err := m.onList(ctx); err != nil {
			return nil, err
		}
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []catalog.SlugCandidate
	for _, id := range m.order {
		if p := m.products[id]; p.Slug == "" {
			out = append(out, catalog.SlugCandidate{ID: p.ID, Name: p.Name})
		}
	}
	return out, nil
}

func (m *memStore) AssignSlug(_ context.Context, id, slug string) error {
	m.mu.Lock()
	m.assignCalls++
	calls := m.assignCalls
	hook := m.onAssign
	m.mu.Unlock()

	if hook != nil {
		hook(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.assignErr[id]; ok {
		return err
	}
	if m.unavailableAfter > 0 && calls > m.unavailableAfter {
		return catalog.ErrStoreUnavailable
	}
	p, ok := m.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if h := m.holder(slug); h != nil && h.ID != id {
		return catalog.ErrSlugConflict
	}
	p.Slug = slug
	return nil
}

func (m *memStore) Create(_ context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createConflicts > 0 {
		m.createConflicts--
		return catalog.ErrSlugConflict
	}
	if m.holder(p.Slug) != nil {
		return catalog.ErrSlugConflict
	}
	cp := *p
	m.products[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memStore) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incrementErr != nil {
		return m.incrementErr
	}
	p, ok := m.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.ViewCount++
	return nil
}
