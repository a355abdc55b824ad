package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarumkm/internal/domain"
)

func TestRegisterMerchantSetsMitraFlag(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	user, err := userRepo.CreateUser(ctx, &domain.User{Name: "Budi", Email: "budi@example.com"})
	require.NoError(t, err)

	uc := NewMerchantUseCase(merchantRepo, userRepo, testLogger())

	merchant, err := uc.RegisterMerchant(ctx, user.ID, "Warung Nasi Bu Siti", domain.CategoryFood, "Masakan rumahan")
	require.NoError(t, err)
	assert.Equal(t, "warung-nasi-bu-siti", merchant.Slug)
	assert.Equal(t, user.ID, merchant.OwnerID)
	assert.True(t, userRepo.byID[user.ID].IsMitra)

	// One store per owner.
	_, err = uc.RegisterMerchant(ctx, user.ID, "Warung Kedua", domain.CategoryFood, "")
	assert.EqualError(t, err, "user already owns a store")
}

// The merchants table has a plain UUID primary key with no default, so
// the entity handed to the repository must already carry a valid UUID.
func TestRegisterMerchantMintsUUID(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	user, err := userRepo.CreateUser(ctx, &domain.User{Name: "Budi", Email: "budi@example.com"})
	require.NoError(t, err)

	uc := NewMerchantUseCase(merchantRepo, userRepo, testLogger())
	merchant, err := uc.RegisterMerchant(ctx, user.ID, "Warung Nasi Bu Siti", domain.CategoryFood, "")
	require.NoError(t, err)

	_, err = uuid.Parse(merchant.ID)
	assert.NoError(t, err, "merchant id %q is not a UUID", merchant.ID)

	stored := merchantRepo.bySlug["warung-nasi-bu-siti"]
	require.NotNil(t, stored)
	assert.Equal(t, merchant.ID, stored.ID, "repository received a different id than the one returned")
}

// Same contract for products: the id reaches the repository already
// minted, never empty.
func TestCreateProductMintsUUID(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	merchantRepo.add(&domain.Merchant{ID: uuid.NewString(), OwnerID: 7, Name: "Warung", Slug: "warung", Category: domain.CategoryFood})
	productRepo := newFakeProductRepo()
	uc := NewProductUseCase(productRepo, merchantRepo, testLogger())

	product, err := uc.CreateProduct(context.Background(), 7, &domain.Product{Name: "Nasi Goreng", Price: 15000})
	require.NoError(t, err)

	_, err = uuid.Parse(product.ID)
	assert.NoError(t, err, "product id %q is not a UUID", product.ID)

	stored, ok := productRepo.products[product.ID]
	require.True(t, ok, "repository was not handed the minted id")
	assert.Equal(t, product.ID, stored.ID)
}

func TestRegisterMerchantValidation(t *testing.T) {
	uc := NewMerchantUseCase(newFakeMerchantRepo(), newFakeUserRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.RegisterMerchant(ctx, 1, "  ", domain.CategoryFood, "")
	assert.Error(t, err)

	_, err = uc.RegisterMerchant(ctx, 1, "Toko", domain.MerchantCategory("crypto"), "")
	assert.Error(t, err)
}

func TestUpdateStoreSettingsPatchesOnlyProvidedFields(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	merchantRepo.add(&domain.Merchant{ID: "m-1", OwnerID: 7, Name: "Warung", Slug: "warung", Description: "lama"})
	uc := NewMerchantUseCase(merchantRepo, newFakeUserRepo(), testLogger())

	city := "Bandung"
	accepts := true
	merchant, err := uc.UpdateStoreSettings(context.Background(), 7, domain.StoreSettingsInput{
		City:            &city,
		AcceptsDelivery: &accepts,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", merchant.City)
	assert.True(t, merchant.AcceptsDelivery)
	assert.Equal(t, "lama", merchant.Description)

	// Empty patch is a no-op, not an error.
	merchant, err = uc.UpdateStoreSettings(context.Background(), 7, domain.StoreSettingsInput{})
	require.NoError(t, err)
	assert.Equal(t, "m-1", merchant.ID)
}

func TestProductOperationsScopedToOwnStore(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	merchantRepo.add(&domain.Merchant{ID: "m-1", OwnerID: 7, Name: "Warung", Slug: "warung", Category: domain.CategoryFood})
	merchantRepo.add(&domain.Merchant{ID: "m-2", OwnerID: 8, Name: "Toko", Slug: "toko", Category: domain.CategoryRetail})
	productRepo := newFakeProductRepo()
	uc := NewProductUseCase(productRepo, merchantRepo, testLogger())
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, 7, &domain.Product{Name: "Nasi Goreng", Price: 15000})
	require.NoError(t, err)
	assert.Equal(t, "m-1", product.MerchantID)
	assert.Equal(t, domain.CategoryFood, product.Category, "category defaults to the store's")

	// The other owner cannot touch it.
	_, err = uc.UpdateProduct(ctx, 8, product.ID, map[string]interface{}{"price": int64(20000)})
	assert.EqualError(t, err, "you are not authorized to update this product")
	err = uc.DeleteProduct(ctx, 8, product.ID)
	assert.EqualError(t, err, "you are not authorized to delete this product")

	updated, err := uc.UpdateProduct(ctx, 7, product.ID, map[string]interface{}{"price": int64(20000)})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), updated.Price)

	_, err = uc.UpdateProduct(ctx, 7, product.ID, map[string]interface{}{"price": int64(-5)})
	assert.Error(t, err)

	own, err := uc.ListOwnProducts(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	require.NoError(t, uc.DeleteProduct(ctx, 7, product.ID))
	own, err = uc.ListOwnProducts(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestCreateProductValidation(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	merchantRepo.add(&domain.Merchant{ID: "m-1", OwnerID: 7, Name: "Warung", Slug: "warung", Category: domain.CategoryFood})
	uc := NewProductUseCase(newFakeProductRepo(), merchantRepo, testLogger())
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, 7, &domain.Product{Name: " ", Price: 1000})
	assert.Error(t, err)

	_, err = uc.CreateProduct(ctx, 7, &domain.Product{Name: "Nasi", Price: -1})
	assert.Error(t, err)

	// No store, no products.
	_, err = uc.CreateProduct(ctx, 99, &domain.Product{Name: "Nasi", Price: 1000})
	assert.Error(t, err)
}
