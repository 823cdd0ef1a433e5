package compare

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idilsaglam/compare/internal/events"
	"github.com/idilsaglam/compare/internal/model"
	"github.com/idilsaglam/compare/internal/store"
	"github.com/idilsaglam/compare/internal/store/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures every event as "kind:id", with "-" for a nil item.
type recorder struct {
	got []string
}

func (r *recorder) handle(ev events.Event) {
	id := "-"
	if ev.Item != nil {
		id = ev.Item.ID()
	}
	r.got = append(r.got, string(ev.Kind)+":"+id)
}

func (r *recorder) reset() { r.got = nil }

type fixture struct {
	m        *Manager
	medium   *memstore.Store
	events   *recorder
	warnings []string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{medium: memstore.New(), events: &recorder{}}
	bus := events.NewBus()
	bus.SubscribeAll(f.events.handle)
	opts = append([]Option{
		WithBus(bus),
		WithWarner(WarnFunc(func(msg string) { f.warnings = append(f.warnings, msg) })),
	}, opts...)
	f.m = New(store.New(f.medium), opts...)
	f.m.Init()
	return f
}

func ids(items []*model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func TestAddItemUpToLimit(t *testing.T) {
	f := newFixture(t)

	for i, id := range []string{"A", "B", "C", "D"} {
		f.m.AddItem(id, "Course "+id)
		assert.Equal(t, i+1, f.m.TotalUniqueItems())
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(f.m.Items()))
	assert.Empty(t, f.warnings)
	assert.Equal(t, []string{
		"compare:itemAdded:A", "compare:change:-",
		"compare:itemAdded:B", "compare:change:-",
		"compare:itemAdded:C", "compare:change:-",
		"compare:itemAdded:D", "compare:change:-",
	}, f.events.got)
}

func TestAddItemDuplicateIsUpdateWithoutChange(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("A", "Course A")
	f.events.reset()

	f.m.AddItem("A", "Renamed")

	assert.Equal(t, 1, f.m.TotalUniqueItems())
	assert.Equal(t, "Course A", f.m.ItemByID("A").Name(), "fields are not updated")
	assert.Equal(t, []string{"compare:itemUpdated:A", "compare:change:-"}, f.events.got)
}

func TestAddItemBeyondLimit(t *testing.T) {
	f := newFixture(t, WithLimit(2))
	f.m.AddItem("A", "Course A")
	f.m.AddItem("B", "Course B")
	f.events.reset()

	f.m.AddItem("C", "Course C")

	assert.Equal(t, []string{"A", "B"}, ids(f.m.Items()))
	assert.Nil(t, f.m.ItemByID("C"))
	assert.Equal(t, []string{"Sorry, you reached limit"}, f.warnings)
	assert.Equal(t, []string{"compare:change:-"}, f.events.got, "change fires even when rejected")
}

func TestAddItemDuplicateAtLimitIsNotWarned(t *testing.T) {
	f := newFixture(t, WithLimit(1))
	f.m.AddItem("A", "Course A")

	f.m.AddItem("A", "Course A")

	assert.Empty(t, f.warnings)
	assert.Equal(t, 1, f.m.TotalUniqueItems())
}

func TestWithLimitIgnoresNonPositive(t *testing.T) {
	f := newFixture(t, WithLimit(0), WithKey(""))
	assert.Equal(t, DefaultLimit, f.m.Limit())
	assert.Equal(t, DefaultKey, f.m.Key())
}

func TestDefaultWarnerLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := New(store.New(memstore.New()), WithLimit(1), WithLogger(zap.New(core)))
	m.Init()

	m.AddItem("A", "Course A")
	m.AddItem("B", "Course B")

	entries := logs.FilterMessage("Sorry, you reached limit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["limit"])
}

func TestRemoveItemByID(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("A", "Course A")
	f.m.AddItem("B", "Course B")
	f.m.AddItem("C", "Course C")
	f.events.reset()

	f.m.RemoveItemByID("B")

	assert.Equal(t, 2, f.m.TotalUniqueItems())
	assert.Nil(t, f.m.ItemByID("B"))
	assert.Equal(t, []string{"A", "C"}, ids(f.m.Items()))
	assert.Equal(t, []string{"compare:itemRemoved:B", "compare:change:-"}, f.events.got)
}

func TestRemoveItemByIDMissStillNotifies(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("A", "Course A")
	f.events.reset()

	f.m.RemoveItemByID("Z")

	assert.Equal(t, 1, f.m.TotalUniqueItems())
	assert.Equal(t, []string{"compare:itemRemoved:-", "compare:change:-"}, f.events.got)
}

func TestRemoveItemByIndex(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantIDs   []string
		wantEvent string
	}{
		{name: "first", index: 0, wantIDs: []string{"B", "C"}, wantEvent: "compare:itemRemoved:A"},
		{name: "last", index: 2, wantIDs: []string{"A", "B"}, wantEvent: "compare:itemRemoved:C"},
		{name: "past end", index: 3, wantIDs: []string{"A", "B", "C"}, wantEvent: "compare:itemRemoved:-"},
		{name: "negative", index: -1, wantIDs: []string{"A", "B", "C"}, wantEvent: "compare:itemRemoved:-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.m.AddItem("A", "Course A")
			f.m.AddItem("B", "Course B")
			f.m.AddItem("C", "Course C")
			f.events.reset()

			f.m.RemoveItem(tt.index)

			assert.Equal(t, tt.wantIDs, ids(f.m.Items()))
			assert.Equal(t, []string{tt.wantEvent, "compare:change:-"}, f.events.got)
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("A", "Course A")
	f.m.AddItem("B", "Course B")

	items := f.m.Items()
	items[0] = nil

	assert.Equal(t, []string{"A", "B"}, ids(f.m.Items()))
}

func TestIsEmpty(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.m.IsEmpty())

	f.m.AddItem("A", "Course A")
	assert.False(t, f.m.IsEmpty())

	f.m.RemoveItemByID("A")
	assert.True(t, f.m.IsEmpty())
}

func TestUninitializedBehavesEmpty(t *testing.T) {
	m := New(store.New(memstore.New()))
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.TotalUniqueItems())
	assert.Nil(t, m.ItemByID("A"))
	assert.Empty(t, m.Items())
}

func TestEmpty(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("A", "Course A")
	f.m.AddItem("B", "Course B")
	require.NoError(t, f.m.Save())

	var countAtChange []int
	f.m.Bus().Subscribe(events.Change, func(events.Event) {
		countAtChange = append(countAtChange, f.m.TotalUniqueItems())
	})
	f.events.reset()

	require.NoError(t, f.m.Empty())

	assert.Equal(t, 0, f.m.TotalUniqueItems())
	assert.Equal(t, []int{2}, countAtChange, "change is published before the clear")
	assert.Equal(t, []string{"compare:change:-"}, f.events.got)
	_, ok, err := f.medium.GetItem(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "record is deleted")
}

func TestEmptyReportsStoreError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.medium.Close())

	err := f.m.Empty()
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.True(t, f.m.IsEmpty())
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	_, ok := f.m.Snapshot()
	assert.False(t, ok)

	f.m.AddItem("A", "Course A")
	f.m.AddItem("D", "Course D")

	s, ok := f.m.Snapshot()
	require.True(t, ok)
	want := []model.Record{{ID: "A", Name: "Course A"}, {ID: "D", Name: "Course D"}}
	if diff := cmp.Diff(want, s.Items); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"C", "A", "B"} {
		f.m.AddItem(id, "Course "+id)
	}
	s, ok := f.m.Snapshot()
	require.True(t, ok)

	other := newFixture(t)
	require.NoError(t, other.m.Restore(s))

	got, _ := other.m.Snapshot()
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("restored list mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, other.events.got, "restore publishes nothing")

	raw, ok, err := other.medium.GetItem(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok, "restore saves")
	assert.JSONEq(t, `{"items":[
		{"id":"C","name":"Course C"},
		{"id":"A","name":"Course A"},
		{"id":"B","name":"Course B"}]}`, raw)
}

func TestRestoreReplacesExisting(t *testing.T) {
	f := newFixture(t)
	f.m.AddItem("X", "Course X")

	require.NoError(t, f.m.Restore(Snapshot{Items: []model.Record{{ID: "A", Name: "Course A"}}}))

	assert.Equal(t, []string{"A"}, ids(f.m.Items()))
}

func TestSaveEmptyWritesEmptyItems(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.Save())

	raw, ok, err := f.medium.GetItem(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, raw)
}

func TestSaveUsesKey(t *testing.T) {
	f := newFixture(t, WithKey("courses"))
	f.m.AddItem("A", "Course A")
	require.NoError(t, f.m.Save())

	_, ok, err := f.medium.GetItem("courses")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSaveError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.medium.Close())

	err := f.m.Save()
	assert.True(t, errors.Is(err, store.ErrClosed))
}
