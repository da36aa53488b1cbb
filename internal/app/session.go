package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/internal/confirm"
	"github.com/mesh-intelligence/backoffice/internal/crud"
	"github.com/mesh-intelligence/backoffice/internal/export"
	"github.com/mesh-intelligence/backoffice/internal/notify"
	"github.com/mesh-intelligence/backoffice/internal/seed"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// aliases maps every accepted page name to its canonical name.
var aliases = map[string]string{
	"user":            PageUsers,
	"users":           PageUsers,
	"product":         PageProducts,
	"products":        PageProducts,
	"role":            PageRoles,
	"roles":           PageRoles,
	"purchase-order":  PagePurchaseOrders,
	"purchase-orders": PagePurchaseOrders,
	"purchase_order":  PagePurchaseOrders,
	"purchase_orders": PagePurchaseOrders,
	"po":              PagePurchaseOrders,
	"service":         PageServices,
	"services":        PageServices,
}

// Options configures a Session. Zero values fall back to the defaults of
// types.DefaultConfig, a discarding notifier and the default logger.
// Without a Confirmer deletes are confirmed automatically.
type Options struct {
	Config    types.Config
	Notifier  notify.Notifier
	Confirmer confirm.Confirmer
	Logger    *slog.Logger
}

// Session holds every store of one back-office run. Stores share the
// notifier, the confirmer and the logger.
type Session struct {
	cfg      types.Config
	notifier notify.Notifier
	logger   *slog.Logger

	Users          *crud.Store[types.User]
	Products       *crud.Store[types.Product]
	Roles          *crud.Store[types.Role]
	PurchaseOrders *crud.Store[types.PurchaseOrder]
	Services       *crud.Store[types.Service]

	pages []Page
}

// NewSession loads the seed datasets and builds the stores and pages.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg.PageSize < 1 {
		cfg.PageSize = types.DefaultPageSize
	}
	s := &Session{cfg: cfg, notifier: opts.Notifier, logger: opts.Logger}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = confirm.Yes(s.notifier)
	}

	var err error
	if s.Roles, err = newStore(cfg.SeedDir, seed.Roles, roleSchema(), s, confirmer); err != nil {
		return nil, err
	}
	if s.Users, err = newStore(cfg.SeedDir, seed.Users, userSchema(s.ActiveRoles), s, confirmer); err != nil {
		return nil, err
	}
	if s.Products, err = newStore(cfg.SeedDir, seed.Products, productSchema(), s, confirmer); err != nil {
		return nil, err
	}
	if s.PurchaseOrders, err = newStore(cfg.SeedDir, seed.PurchaseOrders, purchaseOrderSchema(), s, confirmer); err != nil {
		return nil, err
	}
	if s.Services, err = newStore(cfg.SeedDir, seed.Services, serviceSchema(), s, confirmer); err != nil {
		return nil, err
	}

	s.pages = []Page{
		newUsersPage(s.Users, cfg.PageSize),
		newProductsPage(s.Products, cfg.PageSize),
		newRolesPage(s.Roles, cfg.PageSize),
		newPurchaseOrdersPage(s.PurchaseOrders, cfg.PageSize),
		newServicesPage(s.Services, cfg.PageSize),
	}
	s.logger.Debug("session ready",
		"users", s.Users.Len(),
		"products", s.Products.Len(),
		"roles", s.Roles.Len(),
		"purchase_orders", s.PurchaseOrders.Len(),
		"services", s.Services.Len())
	return s, nil
}

func newStore[T types.Entity[T]](dir, name string, schema crud.Schema[T], s *Session, c confirm.Confirmer) (*crud.Store[T], error) {
	items, err := seed.Load[T](name, dir)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return crud.New(schema, items,
		crud.WithNotifier[T](s.notifier),
		crud.WithConfirmer[T](c),
		crud.WithLogger[T](s.logger),
	)
}

// Config returns the configuration the session runs with.
func (s *Session) Config() types.Config { return s.cfg }

// Notifier returns the notifier shared by every store.
func (s *Session) Notifier() notify.Notifier { return s.notifier }

// ActiveRoles returns the names of the roles a user may be assigned.
func (s *Session) ActiveRoles() []string {
	active := lo.Filter(s.Roles.Items(), func(r types.Role, _ int) bool { return r.Status == types.StatusActive })
	return lo.Map(active, func(r types.Role, _ int) string { return r.Name })
}

// Pages returns every entity page in menu order.
func (s *Session) Pages() []Page { return s.pages }

// PageNames returns the canonical page names in menu order.
func (s *Session) PageNames() []string {
	return lo.Map(s.pages, func(p Page, _ int) string { return p.Name() })
}

// Page finds a page by name or alias, ignoring case.
// Returns ErrUnknownEntity for any other name.
func (s *Session) Page(name string) (Page, error) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if ok {
		if p, found := lo.Find(s.pages, func(p Page) bool { return p.Name() == canonical }); found {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q (expected one of %s): %w", name, strings.Join(s.PageNames(), ", "), types.ErrUnknownEntity)
}

// Catalog returns the storefront entries.
func (s *Session) Catalog() []CatalogItem {
	return Catalog(s.Products.Items(), s.Services.Items())
}

// Datasets snapshots every page for export.
func (s *Session) Datasets() []export.Dataset {
	return lo.Map(s.pages, func(p Page, _ int) export.Dataset { return p.Dataset() })
}

// Export writes a snapshot of every collection into dir.
func (s *Session) Export(ctx context.Context, dir, format string) ([]string, error) {
	paths, err := export.Export(ctx, dir, format, s.Datasets()...)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exported", "format", format, "dir", dir, "files", len(paths))
	return paths, nil
}
