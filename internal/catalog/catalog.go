package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-inventory/internal/storage"
)

var ErrExists = errors.New("item template already exists")

// Catalog is the registry of item templates, keyed by template id.
type Catalog struct {
	store storage.Storer[*game.Template]

	// mu serialises Create and Update so existence checks hold until the save
	mu sync.Mutex
}

func New(store storage.Storer[*game.Template]) *Catalog {
	return &Catalog{store: store}
}

// GetBaseItem returns the template registered under templateId. The result
// is shared and must not be modified.
func (c *Catalog) GetBaseItem(ctx context.Context, templateId string) (*game.Template, error) {
	tmpl, err := c.store.Get(ctx, templateId)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: item template %q", game.ErrNotFound, templateId)
	}
	if err != nil {
		return nil, fmt.Errorf("loading item template %q: %w", templateId, err)
	}
	return tmpl, nil
}

// GetDatabaseItem returns a single-unit prototype of the template. The
// prototype has no instance id; it is what a client sees in a shop or
// loot preview before anything is added to an inventory.
func (c *Catalog) GetDatabaseItem(ctx context.Context, templateId string) (*game.Item, error) {
	tmpl, err := c.GetBaseItem(ctx, templateId)
	if err != nil {
		return nil, err
	}
	return tmpl.NewItem(templateId, "", 1), nil
}

// Create registers a new template. It fails if the id is already taken.
func (c *Catalog) Create(ctx context.Context, templateId string, tmpl *game.Template) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.store.Get(ctx, templateId)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrExists, templateId)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("checking item template %q: %w", templateId, err)
	}

	return c.save(ctx, templateId, tmpl)
}

// Update replaces an existing template. Items already held by players keep
// the values they were created with.
func (c *Catalog) Update(ctx context.Context, templateId string, tmpl *game.Template) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.store.Get(ctx, templateId)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: item template %q", game.ErrNotFound, templateId)
	}
	if err != nil {
		return fmt.Errorf("checking item template %q: %w", templateId, err)
	}

	return c.save(ctx, templateId, tmpl)
}

func (c *Catalog) save(ctx context.Context, templateId string, tmpl *game.Template) error {
	if tmpl == nil {
		return fmt.Errorf("item template %q is nil", templateId)
	}
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("validating item template %q: %w", templateId, err)
	}
	return c.store.Save(ctx, templateId, tmpl)
}

// Seed registers each template, replacing any stored template with the same
// id. Templates are processed in id order so failures are reproducible.
func (c *Catalog) Seed(ctx context.Context, templates map[string]*game.Template) error {
	for _, id := range slices.Sorted(maps.Keys(templates)) {
		err := c.Create(ctx, id, templates[id])
		if errors.Is(err, ErrExists) {
			err = c.Update(ctx, id, templates[id])
		}
		if err != nil {
			return fmt.Errorf("seeding %s: %w", id, err)
		}
	}
	slog.InfoContext(ctx, "item catalog seeded", "templates", len(templates))
	return nil
}

// Ids returns every registered template id in sorted order.
func (c *Catalog) Ids(ctx context.Context) ([]string, error) {
	all, err := c.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(all)), nil
}
