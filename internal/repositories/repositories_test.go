package repositories_test

import (
	"context"
	"testing"

	"bistro/internal/models"
	"bistro/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type repoSet struct {
	users    repositories.UserRepository
	menu     repositories.MenuRepository
	carts    repositories.CartRepository
	payments repositories.PaymentRepository
}

// eachStore runs fn against a fresh SQLite-backed GORM store and a fresh in-memory store.
func eachStore(t *testing.T, fn func(t *testing.T, r repoSet)) {
	t.Run("gorm", func(t *testing.T) {
		dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
		require.NoError(t, err)
		require.NoError(t, repositories.AutoMigrate(db))
		fn(t, repoSet{
			users:    repositories.NewGORMUserRepository(db),
			menu:     repositories.NewGORMMenuRepository(db),
			carts:    repositories.NewGORMCartRepository(db),
			payments: repositories.NewGORMPaymentRepository(db),
		})
	})
	t.Run("memory", func(t *testing.T) {
		s := repositories.NewMockStore()
		fn(t, repoSet{
			users:    repositories.NewMockUserRepository(s),
			menu:     repositories.NewMockMenuRepository(s),
			carts:    repositories.NewMockCartRepository(s),
			payments: repositories.NewMockPaymentRepository(s),
		})
	})
}

func TestTotalRevenue(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		revenue, err := r.payments.TotalRevenue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, revenue)

		for _, price := range []float64{10, 20, 30} {
			_, err := r.payments.CreateAndClearCart(ctx, &models.Payment{Email: "a@example.com", Price: price})
			require.NoError(t, err)
		}
		revenue, err = r.payments.TotalRevenue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 60.0, revenue)

		n, err := r.payments.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestCreateAndClearCartRemovesOnlyListedEntries(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		var cart []*models.CartItem
		for i := 0; i < 3; i++ {
			item := &models.CartItem{Email: "a@example.com", MenuID: uuid.New().String(), Name: "dish", Price: 5}
			require.NoError(t, r.carts.Create(ctx, item))
			cart = append(cart, item)
		}
		other := &models.CartItem{Email: "b@example.com", MenuID: uuid.New().String(), Price: 7}
		require.NoError(t, r.carts.Create(ctx, other))

		payment := &models.Payment{
			Email:   "a@example.com",
			Price:   10,
			CartIDs: []string{cart[0].ID, cart[1].ID},
		}
		deleted, err := r.payments.CreateAndClearCart(ctx, payment)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		assert.NotEmpty(t, payment.ID)

		remaining, err := r.carts.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, cart[2].ID, remaining[0].ID)

		others, err := r.carts.GetByEmail(ctx, "b@example.com")
		require.NoError(t, err)
		assert.Len(t, others, 1)

		payments, err := r.payments.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, []string{cart[0].ID, cart[1].ID}, payments[0].CartIDs)
	})
}

func TestCreateAndClearCartRejectsMalformedCartID(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		_, err := r.payments.CreateAndClearCart(ctx, &models.Payment{Email: "a@example.com", CartIDs: []string{"nope"}})
		assert.ErrorIs(t, err, repositories.ErrInvalidID)

		n, err := r.payments.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestOrderStatsGroupsByCategory(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		soup := &models.MenuItem{Name: "Tomato soup", Category: "soup", Price: 4.5}
		stew := &models.MenuItem{Name: "Onion soup", Category: "soup", Price: 5.5}
		cake := &models.MenuItem{Name: "Cheesecake", Category: "dessert", Price: 6}
		for _, m := range []*models.MenuItem{soup, stew, cake} {
			require.NoError(t, r.menu.Create(ctx, m))
		}

		_, err := r.payments.CreateAndClearCart(ctx, &models.Payment{
			Email:       "a@example.com",
			Price:       10,
			MenuItemIDs: []string{soup.ID, stew.ID},
		})
		require.NoError(t, err)

		stats, err := r.payments.OrderStats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "soup", stats[0].Category)
		assert.Equal(t, int64(2), stats[0].Quantity)
		assert.InDelta(t, 10.0, stats[0].Revenue, 1e-9)

		_, err = r.payments.CreateAndClearCart(ctx, &models.Payment{
			Email:       "b@example.com",
			Price:       12,
			MenuItemIDs: []string{cake.ID, cake.ID, uuid.New().String()},
		})
		require.NoError(t, err)

		stats, err = r.payments.OrderStats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, models.CategoryStat{Category: "dessert", Quantity: 2, Revenue: 12}, stats[0])
		assert.Equal(t, "soup", stats[1].Category)
	})
}

func TestUserRoleAndLookup(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		user := &models.User{Name: "Ada", Email: "ada@example.com"}
		require.NoError(t, r.users.Create(ctx, user))

		_, err := r.users.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		res, err := r.users.SetRole(ctx, user.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)

		found, err := r.users.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, found.IsAdmin())

		deleted, err := r.users.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		deleted, err = r.users.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)

		_, err = r.users.Delete(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repositories.ErrInvalidID)
	})
}

func TestUserEmailIsUnique(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		require.NoError(t, r.users.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com"}))
		err := r.users.Create(ctx, &models.User{Name: "Ada Again", Email: "ada@example.com"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		n, err := r.users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestMenuUpdateOverwritesFields(t *testing.T) {
	eachStore(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		item := &models.MenuItem{Name: "Salad", Category: "salad", Price: 8, Recipe: "greens"}
		require.NoError(t, r.menu.Create(ctx, item))

		res, err := r.menu.Update(ctx, &models.MenuItem{ID: item.ID, Name: "Caesar", Category: "salad", Price: 9.5})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)

		got, err := r.menu.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Caesar", got.Name)
		assert.Equal(t, "salad", got.Category)
		assert.Equal(t, 9.5, got.Price)
		assert.Empty(t, got.Recipe)

		_, err = r.menu.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
