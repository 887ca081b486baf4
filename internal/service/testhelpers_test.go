package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"donmenu/internal/dto"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. They implement just enough semantics for the
// services under test; the GORM implementations are covered by the e2e suite.

var (
	_ repository.IngredientRepository = (*fakeIngredientRepo)(nil)
	_ repository.RecipeRepository     = (*fakeRecipeRepo)(nil)
	_ repository.MenuItemRepository   = (*fakeMenuItemRepo)(nil)
	_ repository.CaixaRepository      = (*fakeCaixaRepo)(nil)
	_ repository.OrderRepository      = (*fakeOrderRepo)(nil)
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ ClosureEnqueuer                 = (*fakeEnqueuer)(nil)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ─── Ingredients ─────────────────────────────────────────────────────────────

type fakeIngredientRepo struct {
	items      map[uuid.UUID]*model.Ingredient
	recipeRefs map[uuid.UUID]int64
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{
		items:      make(map[uuid.UUID]*model.Ingredient),
		recipeRefs: make(map[uuid.UUID]int64),
	}
}

func (f *fakeIngredientRepo) Create(_ context.Context, i *model.Ingredient) error {
	ensureID(&i.ID)
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIngredientRepo) FindByName(_ context.Context, name string) (*model.Ingredient, error) {
	for _, i := range f.items {
		if i.Name == name {
			cp := *i
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIngredientRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, id := range ids {
		if i, ok := f.items[id]; ok {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) List(_ context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var out []model.Ingredient
	for _, i := range f.items {
		if filter.Name == "" || strings.Contains(strings.ToLower(i.Name), strings.ToLower(filter.Name)) {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, int64(len(out)), nil
}

func (f *fakeIngredientRepo) Update(_ context.Context, i *model.Ingredient) error {
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeIngredientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeIngredientRepo) CountRecipeReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return f.recipeRefs[id], nil
}

// ─── Recipes ─────────────────────────────────────────────────────────────────

type fakeRecipeRepo struct {
	recipes     map[uuid.UUID]*model.Recipe
	ingredients *fakeIngredientRepo
	menuRefs    map[uuid.UUID]int64
}

func newFakeRecipeRepo(ingredients *fakeIngredientRepo) *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:     make(map[uuid.UUID]*model.Recipe),
		ingredients: ingredients,
		menuRefs:    make(map[uuid.UUID]int64),
	}
}

func (f *fakeRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	cp.Ingredients = append([]model.RecipeIngredient(nil), r.Ingredients...)
	sort.Slice(cp.Ingredients, func(a, b int) bool { return cp.Ingredients[a].Position < cp.Ingredients[b].Position })
	for i := range cp.Ingredients {
		if f.ingredients != nil {
			if ing, ok := f.ingredients.items[cp.Ingredients[i].IngredientID]; ok {
				ingCp := *ing
				cp.Ingredients[i].Ingredient = &ingCp
			}
		}
	}
	return &cp, nil
}

func (f *fakeRecipeRepo) List(ctx context.Context, page, limit int) ([]model.Recipe, int64, error) {
	var out []model.Recipe
	for id := range f.recipes {
		r, _ := f.FindByID(ctx, id)
		out = append(out, *r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepo) SaveWithLines(_ context.Context, recipe *model.Recipe, lines []model.RecipeIngredient) error {
	ensureID(&recipe.ID)
	for i := range lines {
		ensureID(&lines[i].ID)
		lines[i].RecipeID = recipe.ID
	}
	cp := *recipe
	cp.Ingredients = append([]model.RecipeIngredient(nil), lines...)
	f.recipes[recipe.ID] = &cp
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) CountMenuItemReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return f.menuRefs[id], nil
}

func (f *fakeRecipeRepo) DB() *gorm.DB { return nil }

// ─── Menu items ──────────────────────────────────────────────────────────────

type fakeMenuItemRepo struct {
	items   map[uuid.UUID]*model.MenuItem
	recipes *fakeRecipeRepo
}

func newFakeMenuItemRepo(recipes *fakeRecipeRepo) *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: make(map[uuid.UUID]*model.MenuItem), recipes: recipes}
}

func (f *fakeMenuItemRepo) Create(_ context.Context, m *model.MenuItem) error {
	ensureID(&m.ID)
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMenuItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMenuItemRepo) List(_ context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, int64, error) {
	var out []model.MenuItem
	for _, m := range f.items {
		switch filter.Active {
		case "false":
			if m.Active {
				continue
			}
		case "all":
		default:
			if !m.Active {
				continue
			}
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, int64(len(out)), nil
}

func (f *fakeMenuItemRepo) ListVisible(_ context.Context) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, m := range f.items {
		if m.Active && m.Visible {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeMenuItemRepo) ListWithRecipes(ctx context.Context) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, m := range f.items {
		if m.RecipeID == nil {
			continue
		}
		cp := *m
		if f.recipes != nil {
			if r, err := f.recipes.FindByID(ctx, *m.RecipeID); err == nil {
				cp.Recipe = r
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeMenuItemRepo) Update(_ context.Context, m *model.MenuItem) error {
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMenuItemRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := f.items[id]; ok {
		m.Active = false
	}
	return nil
}

// ─── Caixa ───────────────────────────────────────────────────────────────────

type fakeCaixaRepo struct {
	sessions map[uuid.UUID]*model.CaixaSession
	entries  []model.CaixaEntry
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{sessions: make(map[uuid.UUID]*model.CaixaSession)}
}

func (f *fakeCaixaRepo) CreateSession(_ context.Context, s *model.CaixaSession) error {
	ensureID(&s.ID)
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeCaixaRepo) FindOpenSession(_ context.Context) (*model.CaixaSession, error) {
	for _, s := range f.sessions {
		if s.Status == "open" {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCaixaRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CaixaSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Entries, _ = f.ListEntries(ctx, id)
	return &cp, nil
}

func (f *fakeCaixaRepo) CloseSession(_ context.Context, s *model.CaixaSession) error {
	stored, ok := f.sessions[s.ID]
	if !ok || stored.Status != "open" {
		return gorm.ErrRecordNotFound
	}
	stored.Status = s.Status
	stored.ExpectedAmount = s.ExpectedAmount
	stored.DeclaredAmount = s.DeclaredAmount
	stored.Difference = s.Difference
	stored.Note = s.Note
	stored.ClosedAt = s.ClosedAt
	return nil
}

func (f *fakeCaixaRepo) CreateEntry(_ context.Context, e *model.CaixaEntry) error {
	ensureID(&e.ID)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeCaixaRepo) CreateEntryTx(_ *gorm.DB, e *model.CaixaEntry) error {
	return f.CreateEntry(context.Background(), e)
}

func (f *fakeCaixaRepo) ListEntries(_ context.Context, sessionID uuid.UUID) ([]model.CaixaEntry, error) {
	var out []model.CaixaEntry
	for _, e := range f.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCaixaRepo) ListEntriesInWindow(_ context.Context, from, to time.Time) ([]model.CaixaEntry, error) {
	var out []model.CaixaEntry
	for _, e := range f.entries {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCaixaRepo) SumEntries(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	entries, _ := f.ListEntries(ctx, sessionID)
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (f *fakeCaixaRepo) ListSessions(_ context.Context, page, limit int) ([]model.CaixaSession, int64, error) {
	var out []model.CaixaSession
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].OpenedAt.After(out[b].OpenedAt) })
	return out, int64(len(out)), nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders     map[uuid.UUID]*model.Order
	items      *fakeMenuItemRepo
	nextNumber int64
}

func newFakeOrderRepo(items *fakeMenuItemRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*model.Order), items: items}
}

func (f *fakeOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	ensureID(&o.ID)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	for i := range o.Items {
		ensureID(&o.Items[i].ID)
		o.Items[i].OrderID = o.ID
		o.Items[i].CreatedAt = o.CreatedAt
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	for i := range cp.Items {
		if f.items != nil {
			if m, ok := f.items.items[cp.Items[i].MenuItemID]; ok {
				mCp := *m
				cp.Items[i].MenuItem = &mCp
			}
		}
	}
	return &cp, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for id := range f.orders {
		o, _ := f.FindByID(ctx, id)
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ListItemsInWindow(ctx context.Context, from, to time.Time) ([]model.OrderItem, error) {
	var out []model.OrderItem
	for id, o := range f.orders {
		if o.Status != "completed" || o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		full, _ := f.FindByID(ctx, id)
		out = append(out, full.Items...)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	f.nextNumber++
	return f.nextNumber, nil
}

func (f *fakeOrderRepo) DB() *gorm.DB { return nil }

// ─── Users ───────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	ensureID(&u.ID)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.Active = false
	}
	return nil
}

// ─── Closure enqueuer ────────────────────────────────────────────────────────

type fakeEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeEnqueuer) EnqueueClosure(_ context.Context, sessionID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, sessionID)
	return nil
}
