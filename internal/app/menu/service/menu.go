package service

import (
	"context"
	"fmt"
	"strings"

	"food-ordering-system/internal/app/menu/dto"
	"food-ordering-system/internal/app/menu/repository"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"
)

type MenuServiceInterface interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int) (domain.MenuItem, error)
	CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int, req dto.UpdateMenuItemRequest) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type MenuService struct {
	repo repository.MenuRepositoryInterface
	lg   *logger.Logger
}

func NewMenuService(repo repository.MenuRepositoryInterface, lg *logger.Logger) MenuServiceInterface {
	return &MenuService{repo: repo, lg: lg}
}

func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *MenuService) GetItem(ctx context.Context, id int) (domain.MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (domain.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuItem{}, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if req.Price.IsNegative() {
		return domain.MenuItem{}, fmt.Errorf("price must not be negative: %w", domain.ErrValidation)
	}
	if req.Quantity < 0 {
		return domain.MenuItem{}, fmt.Errorf("quantity must not be negative: %w", domain.ErrValidation)
	}

	item := domain.MenuItem{
		Name:        name,
		Price:       req.Price,
		Category:    strings.TrimSpace(req.Category),
		Quantity:    req.Quantity,
		IsAvailable: req.Quantity > 0,
	}
	// An explicit false wins over the stock-derived flag so items can be
	// delisted while stock remains.
	if req.IsAvailable != nil && !*req.IsAvailable {
		item.IsAvailable = false
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return domain.MenuItem{}, err
	}
	s.lg.Info("menu_item_created", map[string]any{"item_id": created.ID, "name": created.Name})
	return created, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id int, req dto.UpdateMenuItemRequest) (domain.MenuItem, error) {
	p := repository.MenuPatch{
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.MenuItem{}, fmt.Errorf("name must not be empty: %w", domain.ErrValidation)
		}
		p.Name = &name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.MenuItem{}, fmt.Errorf("price must not be negative: %w", domain.ErrValidation)
		}
		p.Price = req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.MenuItem{}, fmt.Errorf("quantity must not be negative: %w", domain.ErrValidation)
		}
		p.Quantity = req.Quantity
		if req.IsAvailable == nil {
			avail := *req.Quantity > 0
			p.IsAvailable = &avail
		}
	}
	if p.Empty() {
		return domain.MenuItem{}, fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}

	updated, err := s.repo.UpdateItem(ctx, id, p)
	if err != nil {
		return domain.MenuItem{}, err
	}
	s.lg.Info("menu_item_updated", map[string]any{"item_id": updated.ID})
	return updated, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id int) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.lg.Info("menu_item_deleted", map[string]any{"item_id": id})
	return nil
}
