package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workshop-registration/internal/model"
)

func TestRegisterRoundTrip(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	w := validWorkshop("WS_00100")
	w.Capacity = 1
	_, err := ws.Create(ctx, w)
	require.NoError(t, err)

	phone := "+4915112345678"
	reg, err := admissions.Register(ctx, "WS_00100",
		Identity{UserName: "alice", Email: "alice@example.com"},
		RegistrationDetails{Phone: &phone, PreferredContact: model.ContactMobile})
	require.NoError(t, err)
	assert.NotZero(t, reg.ID)
	assert.Equal(t, "WS_00100", reg.WorkshopCode)
	assert.Equal(t, "alice", reg.UserName)
	assert.Equal(t, model.ContactMobile, reg.PreferredContact)

	// The single seat is taken; the next user bounces.
	_, err = admissions.Register(ctx, "WS_00100",
		Identity{UserName: "bob", Email: "bob@example.com"}, RegistrationDetails{})
	require.Error(t, err)
	assert.Equal(t, KindWorkshopFull, KindOf(err))

	// Freeing the seat readmits.
	require.NoError(t, admissions.Unregister(ctx, reg.ID))
	_, err = admissions.Register(ctx, "WS_00100",
		Identity{UserName: "bob", Email: "bob@example.com"}, RegistrationDetails{})
	require.NoError(t, err)
}

func TestRegisterDuplicateUser(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	alice := Identity{UserName: "alice", Email: "alice@example.com"}
	_, err = admissions.Register(ctx, "WS_00100", alice, RegistrationDetails{})
	require.NoError(t, err)

	_, err = admissions.Register(ctx, "WS_00100", alice, RegistrationDetails{})
	require.Error(t, err)
	assert.Equal(t, KindUserAlreadyRegistered, KindOf(err))

	// Still exactly one registration.
	regs, err := admissions.ListByWorkshop(ctx, "WS_00100")
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegisterValidation(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	t.Run("blank identity", func(t *testing.T) {
		_, err := admissions.Register(ctx, "WS_00100", Identity{}, RegistrationDetails{})
		require.Error(t, err)
		assert.Equal(t, KindInvalidUser, KindOf(err))
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := admissions.Register(ctx, "WS_00100", Identity{UserName: "alice"}, RegistrationDetails{})
		require.Error(t, err)
		assert.Equal(t, KindInvalidUser, KindOf(err))
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := admissions.Register(ctx, "WS", Identity{UserName: "alice", Email: "a@example.com"}, RegistrationDetails{})
		require.Error(t, err)
		assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
	})

	t.Run("unknown workshop", func(t *testing.T) {
		_, err := admissions.Register(ctx, "WS_99999", Identity{UserName: "alice", Email: "a@example.com"}, RegistrationDetails{})
		require.Error(t, err)
		assert.Equal(t, KindWorkshopNotFound, KindOf(err))
	})

	t.Run("bad contact channel", func(t *testing.T) {
		_, err := admissions.Register(ctx, "WS_00100",
			Identity{UserName: "alice", Email: "a@example.com"},
			RegistrationDetails{PreferredContact: "PIGEON"})
		require.Error(t, err)
		assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
	})
}

func TestRegisterDefaultsContactToEmail(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	reg, err := admissions.Register(ctx, "WS_00100",
		Identity{UserName: "alice", Email: "alice@example.com"}, RegistrationDetails{})
	require.NoError(t, err)
	assert.Equal(t, model.ContactEmail, reg.PreferredContact)
}

func TestUnregisterNotFound(t *testing.T) {
	_, admissions := newTestServices(t)

	err := admissions.Unregister(context.Background(), 424242)
	require.Error(t, err)
	assert.Equal(t, KindRegistrationNotFound, KindOf(err))
}

func TestListByUser(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)
	_, err = ws.Create(ctx, validWorkshop("WS_00200"))
	require.NoError(t, err)

	alice := Identity{UserName: "alice", Email: "alice@example.com"}
	for _, code := range []string{"WS_00100", "WS_00200"} {
		_, err := admissions.Register(ctx, code, alice, RegistrationDetails{})
		require.NoError(t, err)
	}
	_, err = admissions.Register(ctx, "WS_00100",
		Identity{UserName: "bob", Email: "bob@example.com"}, RegistrationDetails{})
	require.NoError(t, err)

	mine, err := admissions.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = admissions.ListByUser(ctx, Identity{})
	require.Error(t, err)
	assert.Equal(t, KindInvalidUser, KindOf(err))

	all, err := admissions.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// TestConcurrentRegistrationCapacity hammers one workshop with many
// more registrants than seats and verifies that exactly capacity of
// them get in.
func TestConcurrentRegistrationCapacity(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	const capacity = 5
	const attempts = 100

	w := validWorkshop("WS_00100")
	w.Capacity = capacity
	_, err := ws.Create(ctx, w)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := admissions.Register(ctx, "WS_00100",
				Identity{
					UserName: fmt.Sprintf("user-%03d", n),
					Email:    fmt.Sprintf("user-%03d@example.com", n),
				}, RegistrationDetails{})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	admitted, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			admitted++
		case KindOf(err) == KindWorkshopFull:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, admitted)
	assert.Equal(t, attempts-capacity, full)

	regs, err := admissions.ListByWorkshop(ctx, "WS_00100")
	require.NoError(t, err)
	assert.Len(t, regs, capacity)
}

// TestConcurrentDuplicateUser fires the same identity at one workshop
// from many goroutines; exactly one registration may land.
func TestConcurrentDuplicateUser(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	alice := Identity{UserName: "alice", Email: "alice@example.com"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := admissions.Register(ctx, "WS_00100", alice, RegistrationDetails{}); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
	regs, err := admissions.ListByWorkshop(ctx, "WS_00100")
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

// TestConcurrentDeleteVsRegister interleaves deletion attempts with a
// stream of registrations and checks the end state is consistent: the
// workshop is either gone with no registrations left behind, or it
// still exists.
func TestConcurrentDeleteVsRegister(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = admissions.Register(ctx, "WS_00100",
				Identity{
					UserName: fmt.Sprintf("user-%02d", n),
					Email:    fmt.Sprintf("user-%02d@example.com", n),
				}, RegistrationDetails{})
		}(i)
		if n := i; n%5 == 0 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = ws.Delete(ctx, "WS_00100")
			}()
		}
	}
	wg.Wait()

	regs, err := admissions.ListByWorkshop(ctx, "WS_00100")
	require.NoError(t, err)
	if _, err := ws.GetByCode(ctx, "WS_00100"); err != nil {
		// Deleted: the guard must not have left registrations behind.
		require.Equal(t, KindWorkshopNotFound, KindOf(err))
		assert.Empty(t, regs, "registrations must not outlive their workshop")
	}
}
