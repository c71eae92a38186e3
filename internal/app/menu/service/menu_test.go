package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"food-ordering-system/internal/app/menu/dto"
	"food-ordering-system/internal/app/menu/repository"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

type fakeMenuRepo struct {
	items  map[int]domain.MenuItem
	nextID int
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[int]domain.MenuItem), nextID: 1}
}

func (f *fakeMenuRepo) ListItems(context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, 0, len(f.items))
	for _, m := range f.items {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMenuRepo) GetItem(_ context.Context, id int) (domain.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	return m, nil
}

func (f *fakeMenuRepo) CreateItem(_ context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeMenuRepo) UpdateItem(_ context.Context, id int, p repository.MenuPatch) (domain.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Quantity != nil {
		m.Quantity = *p.Quantity
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
	f.items[id] = m
	return m, nil
}

func (f *fakeMenuRepo) DeleteItem(_ context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

func newTestMenu(repo repository.MenuRepositoryInterface) MenuServiceInterface {
	return NewMenuService(repo, logger.New("test"))
}

func TestCreateDerivesAvailabilityFromStock(t *testing.T) {
	svc := newTestMenu(newFakeMenuRepo())

	inStock, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name: "Sinigang", Price: decimal.NewFromInt(150), Category: "Mains", Quantity: 12,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if !inStock.IsAvailable {
		t.Error("item with stock should be available")
	}

	outOfStock, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name: "Halo-Halo", Price: decimal.NewFromInt(90), Category: "Desserts", Quantity: 0,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if outOfStock.IsAvailable {
		t.Error("item without stock should be unavailable")
	}
}

func TestCreateHonorsExplicitDelisting(t *testing.T) {
	svc := newTestMenu(newFakeMenuRepo())

	delisted := false
	item, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name: "Lechon", Price: decimal.NewFromInt(400), Quantity: 5, IsAvailable: &delisted,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.IsAvailable {
		t.Error("explicit delisting should win over stock-derived availability")
	}
}

func TestUpdateQuantityRefreshesAvailability(t *testing.T) {
	repo := newFakeMenuRepo()
	svc := newTestMenu(repo)

	created, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name: "Pancit", Price: decimal.NewFromInt(110), Quantity: 3,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	zero := 0
	updated, err := svc.UpdateItem(context.Background(), created.ID, dto.UpdateMenuItemRequest{Quantity: &zero})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.IsAvailable {
		t.Error("zero stock should delist the item")
	}

	ten := 10
	updated, err = svc.UpdateItem(context.Background(), created.ID, dto.UpdateMenuItemRequest{Quantity: &ten})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if !updated.IsAvailable {
		t.Error("restock should relist the item")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestMenu(newFakeMenuRepo())

	cases := []dto.CreateMenuItemRequest{
		{Name: "", Price: decimal.NewFromInt(10)},
		{Name: "Taho", Price: decimal.NewFromInt(-1)},
		{Name: "Taho", Price: decimal.NewFromInt(10), Quantity: -3},
	}
	for _, req := range cases {
		if _, err := svc.CreateItem(context.Background(), req); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("CreateItem(%+v): err = %v, want ErrValidation", req, err)
		}
	}
}
