package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/adapters/repo/memory"
	"github.com/phenrril/shopmarket/internal/domain"
)

func TestProductCreateDerivesStock(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(), Now: fixedClock}

	p := &domain.Product{Name: "Beanie", Price: 15, StockCount: 0, InStock: true, Rating: 5, ReviewCount: 9,
		Gender: domain.GenderUnisex, IsVisible: true, Colors: []string{"Black", ""}}
	require.NoError(t, uc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.InStock)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.ReviewCount)
	assert.Equal(t, []string{"Black"}, p.Colors)
	assert.Equal(t, testNow, p.CreatedAt)

	err := uc.Create(ctx, &domain.Product{Name: "", Gender: domain.GenderMen})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestProductUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...), Now: fixedClock}

	upd := &domain.Product{ID: "other", Name: "Oxford II", Price: 120, StockCount: 0, Gender: domain.GenderMen, IsVisible: true}
	require.NoError(t, uc.Update(ctx, "oxford", upd))
	assert.Equal(t, "oxford", upd.ID)
	assert.Equal(t, 4.6, upd.Rating)
	assert.Equal(t, 120, upd.ReviewCount)
	assert.False(t, upd.InStock)

	got, err := uc.Get(ctx, "oxford")
	require.NoError(t, err)
	assert.Equal(t, "Oxford II", got.Name)

	assert.ErrorIs(t, uc.Update(ctx, "missing", upd), domain.ErrNotFound)
}

func TestProductCreateRejectsTakenID(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...), Now: fixedClock}

	err := uc.Create(ctx, &domain.Product{ID: "oxford", Name: "Knockoff", Price: 1, Gender: domain.GenderMen, IsVisible: true})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := uc.Get(ctx, "oxford")
	require.NoError(t, err)
	assert.Equal(t, "Oxford Leather Shoes", got.Name)
	assert.Equal(t, 4.6, got.Rating)

	require.NoError(t, uc.Create(ctx, &domain.Product{ID: "fresh", Name: "Fresh", Price: 5, Gender: domain.GenderMen, IsVisible: true}))
	_, err = uc.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestProductMemoInvalidation(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...), Now: fixedClock}

	visible, err := uc.List(ctx, domain.FilterCriteria{}, "", domain.RouteContext{})
	require.NoError(t, err)
	assert.Len(t, visible, 5)

	p, err := uc.ToggleVisibility(ctx, "hidden")
	require.NoError(t, err)
	assert.True(t, p.IsVisible)

	visible, err = uc.List(ctx, domain.FilterCriteria{}, "", domain.RouteContext{})
	require.NoError(t, err)
	assert.Len(t, visible, 6)

	assert.ErrorIs(t, uc.Delete(ctx, "bag", false), domain.ErrConfirmationRequired)
	require.NoError(t, uc.Delete(ctx, "bag", true))
	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.ErrorIs(t, uc.Delete(ctx, "bag", true), domain.ErrNotFound)
}

func TestProductGetVisible(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...)}
	_, err := uc.GetVisible(ctx, "hidden")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	p, err := uc.GetVisible(ctx, "dress")
	require.NoError(t, err)
	assert.Equal(t, "Summer Dress", p.Name)
}

func TestAdminSearch(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...)}

	got, err := uc.AdminSearch(ctx, "heritage", "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"oxford", "hidden"}, ids(got))

	got, err = uc.AdminSearch(ctx, "footwear", "hidden")
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden"}, ids(got))

	got, err = uc.AdminSearch(ctx, "", "visible")
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestHomeShelves(t *testing.T) {
	ctx := context.Background()
	uc := &ProductUC{Products: memory.NewProductRepo(testCatalog()...)}
	featured, fresh, err := uc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dress", "oxford"}, ids(featured))
	assert.Equal(t, []string{"jacket", "dress"}, ids(fresh))

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Footwear", "Outerwear", "Dresses", "Accessories"}, cats)
}

func TestImportAndSeed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepo()
	uc := &ProductUC{Products: repo, Now: fixedClock}

	n, err := uc.Seed(ctx, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	n, err = uc.Seed(ctx, testCatalog())
	require.NoError(t, err)
	assert.Zero(t, n)

	created, updated, err := uc.Import(ctx, []domain.Product{
		{ID: "oxford", Name: "Oxford", Price: 140, StockCount: 9, Gender: domain.GenderMen, IsVisible: true},
		{Name: "Scarf", Price: 19, StockCount: 3, Gender: domain.GenderUnisex, IsVisible: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)

	p, err := uc.Get(ctx, "oxford")
	require.NoError(t, err)
	assert.Equal(t, 4.6, p.Rating)
	assert.True(t, p.InStock)

	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	_, _, err = uc.Import(ctx, []domain.Product{{Name: "Bad", Price: -1, Gender: domain.GenderMen}})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}
