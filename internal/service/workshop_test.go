package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/store/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*WorkshopService, *AdmissionService) {
	t.Helper()
	workshops := memory.NewWorkshopStore()
	registrations := memory.NewRegistrationStore()
	locks := NewCodeLocks()
	ws := NewWorkshopService(workshops, registrations, locks)
	ws.now = func() time.Time { return testNow }
	return ws, NewAdmissionService(workshops, registrations, locks)
}

func validWorkshop(code string) *model.Workshop {
	return &model.Workshop{
		Code:        code,
		Name:        "Intro to Gardening",
		Description: "Hands-on session for beginners",
		StartTime:   testNow.Add(24 * time.Hour),
		EndTime:     testNow.Add(26 * time.Hour),
		Capacity:    10,
	}
}

func TestCreateWorkshop(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	created, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "WS_00100", created.Code)

	got, err := ws.GetByCode(ctx, "WS_00100")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateWorkshopDuplicateCode(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	_, err = ws.Create(ctx, validWorkshop("WS_00100"))
	require.Error(t, err)
	assert.Equal(t, KindWorkshopAlreadyExist, KindOf(err))
}

func TestCreateWorkshopValidation(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Workshop)
	}{
		{"code too short", func(w *model.Workshop) { w.Code = "WS1" }},
		{"code too long", func(w *model.Workshop) { w.Code = "WS_0123456789012345" }},
		{"empty name", func(w *model.Workshop) { w.Name = "  " }},
		{"empty description", func(w *model.Workshop) { w.Description = "" }},
		{"zero capacity", func(w *model.Workshop) { w.Capacity = 0 }},
		{"negative capacity", func(w *model.Workshop) { w.Capacity = -3 }},
		{"missing times", func(w *model.Workshop) { w.StartTime = time.Time{}; w.EndTime = time.Time{} }},
		{"start in the past", func(w *model.Workshop) { w.StartTime = testNow.Add(-time.Hour) }},
		{"end before start", func(w *model.Workshop) {
			w.StartTime = testNow.Add(4 * time.Hour)
			w.EndTime = testNow.Add(2 * time.Hour)
		}},
		{"end equals start", func(w *model.Workshop) {
			w.StartTime = testNow.Add(2 * time.Hour)
			w.EndTime = testNow.Add(2 * time.Hour)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := validWorkshop("WS_00200")
			tc.mutate(w)
			_, err := ws.Create(ctx, w)
			require.Error(t, err)
			assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
		})
	}
}

func TestCreateWorkshopMultibyteCode(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	// Seven characters but fourteen bytes: the length bound counts
	// characters.
	created, err := ws.Create(ctx, validWorkshop("воркшоп"))
	require.NoError(t, err)
	assert.Equal(t, "воркшоп", created.Code)

	// Sixteen characters is over the bound regardless of encoding.
	_, err = ws.Create(ctx, validWorkshop("мастерская-00100"))
	require.Error(t, err)
	assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
}

func TestGetWorkshopNotFound(t *testing.T) {
	ws, _ := newTestServices(t)

	_, err := ws.GetByCode(context.Background(), "WS_99999")
	require.Error(t, err)
	assert.Equal(t, KindWorkshopNotFound, KindOf(err))
}

func TestUpdateWorkshopPartial(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	name := "Advanced Gardening"
	updated, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Gardening", updated.Name)
	// Untouched fields survive.
	assert.Equal(t, "Hands-on session for beginners", updated.Description)
	assert.Equal(t, 10, updated.Capacity)
}

func TestUpdateWorkshopCapacityZero(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	// Lowering capacity to zero is allowed and freezes admission.
	zero := 0
	updated, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{Capacity: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Capacity)

	_, err = admissions.Register(ctx, "WS_00100", Identity{UserName: "alice", Email: "alice@example.com"}, RegistrationDetails{})
	require.Error(t, err)
	assert.Equal(t, KindWorkshopFull, KindOf(err))

	neg := -1
	_, err = ws.Update(ctx, "WS_00100", WorkshopUpdate{Capacity: &neg})
	require.Error(t, err)
	assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
}

func TestUpdateWorkshopTimeRules(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	t.Run("both bounds must order", func(t *testing.T) {
		start := testNow.Add(10 * time.Hour)
		end := testNow.Add(8 * time.Hour)
		_, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{StartTime: &start, EndTime: &end})
		require.Error(t, err)
		assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
	})

	t.Run("past start rejected", func(t *testing.T) {
		start := testNow.Add(-time.Hour)
		_, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{StartTime: &start})
		require.Error(t, err)
		assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
	})

	t.Run("lone end must stay after stored start", func(t *testing.T) {
		// Stored start is testNow+24h; an end inside that window is
		// in the future but still invalid.
		end := testNow.Add(12 * time.Hour)
		_, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{EndTime: &end})
		require.Error(t, err)
		assert.Equal(t, KindInvalidWorkshopData, KindOf(err))
	})

	t.Run("valid lone end accepted", func(t *testing.T) {
		end := testNow.Add(30 * time.Hour)
		updated, err := ws.Update(ctx, "WS_00100", WorkshopUpdate{EndTime: &end})
		require.NoError(t, err)
		assert.True(t, updated.EndTime.Equal(end))
	})
}

func TestUpdateWorkshopNotFound(t *testing.T) {
	ws, _ := newTestServices(t)

	name := "whatever"
	_, err := ws.Update(context.Background(), "WS_99999", WorkshopUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, KindWorkshopNotFound, KindOf(err))
}

func TestDeleteWorkshop(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	// A registered workshop refuses deletion.
	_, err = admissions.Register(ctx, "WS_00100", Identity{UserName: "alice", Email: "alice@example.com"}, RegistrationDetails{})
	require.NoError(t, err)

	err = ws.Delete(ctx, "WS_00100")
	require.Error(t, err)
	assert.Equal(t, KindWorkshopHasRegistrations, KindOf(err))

	// Once the registration is gone, deletion succeeds.
	regs, err := admissions.ListByWorkshop(ctx, "WS_00100")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	require.NoError(t, admissions.Unregister(ctx, regs[0].ID))

	require.NoError(t, ws.Delete(ctx, "WS_00100"))

	_, err = ws.GetByCode(ctx, "WS_00100")
	assert.Equal(t, KindWorkshopNotFound, KindOf(err))
}

func TestDeleteWorkshopNotFound(t *testing.T) {
	ws, _ := newTestServices(t)

	err := ws.Delete(context.Background(), "WS_99999")
	require.Error(t, err)
	assert.Equal(t, KindWorkshopNotFound, KindOf(err))
}

func TestListUpcomingFiltersEnded(t *testing.T) {
	ws, _ := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)

	past := validWorkshop("WS_00200")
	_, err = ws.Create(ctx, past)
	require.NoError(t, err)

	// Move the clock past the second workshop's end.
	ws.now = func() time.Time { return past.EndTime.Add(time.Minute) }

	// Recreate one future workshop relative to the new clock.
	future := validWorkshop("WS_00300")
	future.StartTime = past.EndTime.Add(48 * time.Hour)
	future.EndTime = past.EndTime.Add(50 * time.Hour)
	_, err = ws.Create(ctx, future)
	require.NoError(t, err)

	list, err := ws.ListUpcoming(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "WS_00300", list[0].Code)
}

func TestListAllIncludesRegistrations(t *testing.T) {
	ws, admissions := newTestServices(t)
	ctx := context.Background()

	_, err := ws.Create(ctx, validWorkshop("WS_00100"))
	require.NoError(t, err)
	_, err = ws.Create(ctx, validWorkshop("WS_00200"))
	require.NoError(t, err)

	_, err = admissions.Register(ctx, "WS_00100", Identity{UserName: "alice", Email: "alice@example.com"}, RegistrationDetails{})
	require.NoError(t, err)

	all, err := ws.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byCode := map[string]model.WorkshopDetail{}
	for _, d := range all {
		byCode[d.Code] = d
	}
	assert.Len(t, byCode["WS_00100"].Registrations, 1)
	assert.Empty(t, byCode["WS_00200"].Registrations)
}
