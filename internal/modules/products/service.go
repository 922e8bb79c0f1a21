package products

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Catalog is the remote product API. Every call carries the caller's access
// token.
type Catalog interface {
	ListProducts(ctx context.Context, token string, page int) ([]Product, Pagination, error)
	GetProduct(ctx context.Context, token, id string) (Product, error)
	CreateProduct(ctx context.Context, token string, p Payload) error
	UpdateProduct(ctx context.Context, token, id string, p Payload) error
	DeleteProduct(ctx context.Context, token, id string) error
}

type ListResult struct {
	Products   []Product
	Pagination Pagination
}

// Editor is one open editor session.
type Editor struct {
	Mode Mode
	Form Form
}

type Service struct {
	catalog Catalog
	log     *slog.Logger
}

func NewService(catalog Catalog, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{catalog: catalog, log: l}
}

func (s *Service) List(ctx context.Context, token string, page int) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	items, pg, err := s.catalog.ListProducts(ctx, token, page)
	if err != nil {
		return ListResult{}, fmt.Errorf("list products: %w", err)
	}
	return ListResult{Products: items, Pagination: pg}, nil
}

// OpenEditor starts an editor session. Create starts from the blank
// template; edit and delete load the stored record.
func (s *Service) OpenEditor(ctx context.Context, token string, mode Mode, id string) (Editor, error) {
	switch mode {
	case ModeCreate:
		return Editor{Mode: ModeCreate, Form: NewForm()}, nil
	case ModeEdit, ModeDelete:
		id = strings.TrimSpace(id)
		if id == "" {
			return Editor{}, ErrMissingID
		}
		p, err := s.catalog.GetProduct(ctx, token, id)
		if err != nil {
			return Editor{}, fmt.Errorf("load product %s: %w", id, err)
		}
		if p.ID == "" {
			p.ID = id
		}
		return Editor{Mode: mode, Form: LoadForm(p)}, nil
	default:
		return Editor{}, ErrInvalidMode
	}
}

// Save serializes the form and sends it to create or update depending on
// the mode.
func (s *Service) Save(ctx context.Context, token string, mode Mode, f Form) error {
	payload, err := f.Serialize()
	if err != nil {
		return err
	}

	switch mode {
	case ModeCreate:
		err = s.catalog.CreateProduct(ctx, token, payload)
	case ModeEdit:
		if strings.TrimSpace(f.ID) == "" {
			return ErrMissingID
		}
		err = s.catalog.UpdateProduct(ctx, token, f.ID, payload)
	default:
		return ErrInvalidMode
	}
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "product_save_failed",
			slog.String("mode", string(mode)),
			slog.String("product_id", f.ID),
			slog.Any("err", err),
		)
		return fmt.Errorf("%s product: %w", mode.Verb(), err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if err := s.catalog.DeleteProduct(ctx, token, id); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "product_delete_failed",
			slog.String("product_id", id),
			slog.Any("err", err),
		)
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
