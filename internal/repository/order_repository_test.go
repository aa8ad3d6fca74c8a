package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"order_studio/internal/models"
	"order_studio/internal/store"
)

func newTestRepo(t *testing.T) (OrderRepository, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	return NewOrderRepository(mem, MaxScanIDSource{}, zap.NewNop()), mem
}

func printOrder(name, phoneKey string) *models.Order {
	return &models.Order{
		CustomerName: name,
		Phone:        phoneKey,
		Details: models.OrderDetails{
			Line: models.LinePrint,
			Print: &models.PrintDetails{
				Pages:     10,
				ColorMode: models.ColorBlackWhite,
				PaperType: models.PaperStandard,
			},
		},
		Amount: 20,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
		require.NoError(t, err)
		assert.Equal(t, uint(i), id)
	}

	orders := repo.All(ctx)
	require.Len(t, orders, 5)
	for i, o := range orders {
		assert.Equal(t, uint(i+1), o.ID)
		assert.Equal(t, models.StatusReceived, o.Status)
		assert.Equal(t, models.PaymentUnpaid, o.PaymentStatus)
		assert.False(t, o.CreatedAt.IsZero())
	}
}

func TestCreateConcurrentIDsUnique(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const workers = 32
	ids := make(chan uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
			if err != nil {
				t.Error(err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d allocated", id)
		seen[id] = true
	}
	require.Len(t, seen, workers)
	for i := uint(1); i <= workers; i++ {
		assert.True(t, seen[i], "id %d missing from allocation", i)
	}
}

func TestCreateStartsFromExistingMax(t *testing.T) {
	repo, mem := newTestRepo(t)
	mem.Seed([]store.Record{{ID: 41, Name: "old", Status: "Completed", PaymentStatus: "Paid"}})

	id, err := repo.Create(context.Background(), printOrder("Asha", "9988777777"))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestCreatePropagatesStoreFailures(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	mem.WriteErr = errors.New("sheet unreachable")
	_, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.Error(t, err)
	mem.WriteErr = nil

	mem.ReadErr = errors.New("sheet unreachable")
	_, err = repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.Error(t, err)
}

func TestAllDegradesToEmptyOnReadFailure(t *testing.T) {
	repo, mem := newTestRepo(t)
	mem.ReadErr = errors.New("sheet unreachable")

	assert.Empty(t, repo.All(context.Background()))
	assert.Empty(t, repo.FindByPhoneKey(context.Background(), "9988777777"))
}

func TestFindByPhoneKeySortsNewestFirst(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, printOrder("Binu", "8877665544"))
	require.NoError(t, err)

	// rows written by other tooling may carry the numeric ".0" artifact
	rows, readErr := mem.Read(ctx)
	require.NoError(t, readErr)
	rows = append(rows, store.Record{ID: 99, Name: "Asha", Phone: "9988777777.0", Status: "Received", PaymentStatus: "Unpaid"})
	mem.Seed(rows)

	matched := repo.FindByPhoneKey(ctx, "9988777777")
	require.Len(t, matched, 4)
	assert.Equal(t, uint(99), matched[0].ID)
	assert.Equal(t, uint(3), matched[1].ID)
	assert.Equal(t, uint(1), matched[3].ID)

	assert.Empty(t, repo.FindByPhoneKey(ctx, ""))
	assert.Empty(t, repo.FindByPhoneKey(ctx, "0000000000"))
}

func TestUpdateIsIdempotent(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.NoError(t, err)

	bump := func(o *models.Order) {
		o.Status = models.StatusWaitingForPayment
		o.Amount = 48
	}
	require.NoError(t, repo.Update(ctx, id, bump))
	first, err := mem.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, bump))
	second, err := mem.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	orders := repo.All(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusWaitingForPayment, orders[0].Status)
	assert.Equal(t, 48.0, orders[0].Amount)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.NoError(t, err)
	before, err := mem.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, 404, func(o *models.Order) {
		o.Status = models.StatusCompleted
	}))

	after, err := mem.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdatePreservesIdentityAndCreatedAt(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.NoError(t, err)
	before, err := mem.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, func(o *models.Order) {
		o.ID = 777
		o.CreatedAt = o.CreatedAt.AddDate(1, 0, 0)
		o.PaymentStatus = models.PaymentPaid
	}))

	after, err := mem.Read(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, id, after[0].ID)
	assert.Equal(t, before[0].Date, after[0].Date)
	assert.Equal(t, string(models.PaymentPaid), after[0].PaymentStatus)
}

func TestUpdatePropagatesWriteFailure(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
	require.NoError(t, err)

	mem.WriteErr = errors.New("sheet unreachable")
	err = repo.Update(ctx, id, func(o *models.Order) { o.Status = models.StatusPrinting })
	require.Error(t, err)
}

func TestSequenceIDSource(t *testing.T) {
	seq := &fakeSequence{}
	repo := NewOrderRepository(store.NewMemoryStore(), NewSequenceIDSource(seq), zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		id, err := repo.Create(ctx, printOrder("Asha", "9988777777"))
		require.NoError(t, err)
		assert.Equal(t, uint(i), id)
	}
	assert.Equal(t, 3, seq.calls)
}

type fakeSequence struct {
	mu    sync.Mutex
	n     uint
	calls int
}

func (f *fakeSequence) NextOrderID(ctx context.Context) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	f.calls++
	return f.n, nil
}
