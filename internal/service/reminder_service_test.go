package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/notify"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/storetest"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	fail map[string]bool
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) (notify.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return notify.Receipt{}, errors.New("provider rejected")
	}
	f.sent = append(f.sent, msg)
	return notify.Receipt{Channel: notify.ChannelSMS, ID: "SM1"}, nil
}

func TestReminderService_RunOnce(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	customers := repository.NewGormCustomerRepository(gdb)

	now := time.Date(2024, 1, 21, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)

	salon := storetest.Tenant(t, gdb, "salon")
	due := storetest.Customer(t, gdb, salon.ID, "Ana", nil)
	require.NoError(t, customers.SetNextRetouchDate(ctx, salon.ID, due.ID, tomorrow))
	later := storetest.Customer(t, gdb, salon.ID, "Beatriz", nil)
	require.NoError(t, customers.SetNextRetouchDate(ctx, salon.ID, later.ID, tomorrow.AddDate(0, 0, 3)))
	noPhone := storetest.Customer(t, gdb, salon.ID, "Carla", nil)
	require.NoError(t, gdb.Model(&model.Customer{}).Where("id = ?", noPhone.ID).Update("phone", "").Error)
	require.NoError(t, customers.SetNextRetouchDate(ctx, salon.ID, noPhone.ID, tomorrow))

	closed := storetest.Tenant(t, gdb, "cerrado")
	require.NoError(t, gdb.Model(&model.Tenant{}).Where("id = ?", closed.ID).
		Update("status", model.TenantStatusInactive).Error)
	ignored := storetest.Customer(t, gdb, closed.ID, "Diana", nil)
	require.NoError(t, customers.SetNextRetouchDate(ctx, closed.ID, ignored.ID, tomorrow))

	notifier := &fakeNotifier{}
	svc := NewReminderService(repository.NewGormTenantRepository(gdb), customers, notifier, 1, nil).
		WithClock(func() time.Time { return now })

	sent, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "+5215512345678", notifier.sent[0].To)
	assert.True(t, strings.Contains(notifier.sent[0].Body, "Ana"))
	assert.True(t, strings.Contains(notifier.sent[0].Body, "lunes 22 de enero de 2024"), notifier.sent[0].Body)
}

func TestReminderService_SendFailureIsNotFatal(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	customers := repository.NewGormCustomerRepository(gdb)
	now := time.Date(2024, 1, 21, 8, 0, 0, 0, time.UTC)

	salon := storetest.Tenant(t, gdb, "salon")
	a := storetest.Customer(t, gdb, salon.ID, "Ana", nil)
	require.NoError(t, customers.SetNextRetouchDate(ctx, salon.ID, a.ID, now.AddDate(0, 0, 1)))
	b := storetest.Customer(t, gdb, salon.ID, "Beatriz", nil)
	require.NoError(t, gdb.Model(&model.Customer{}).Where("id = ?", b.ID).Update("phone", "5512345678").Error)
	require.NoError(t, customers.SetNextRetouchDate(ctx, salon.ID, b.ID, now.AddDate(0, 0, 1)))

	notifier := &fakeNotifier{fail: map[string]bool{"+5215512345678": true}}
	svc := NewReminderService(repository.NewGormTenantRepository(gdb), customers, notifier, 1, nil).
		WithClock(func() time.Time { return now })

	sent, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "5512345678", notifier.sent[0].To)
}

func TestReminderService_StartStop(t *testing.T) {
	gdb := storetest.NewDB(t)
	svc := NewReminderService(repository.NewGormTenantRepository(gdb),
		repository.NewGormCustomerRepository(gdb), &fakeNotifier{}, 1, nil)

	require.Error(t, svc.Start("not a schedule"))
	require.NoError(t, svc.Start("0 9 * * *"))
	assert.Error(t, svc.Start("0 9 * * *"))
	svc.Stop()
	svc.Stop()
}
