package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RapidChanges_OnlyFinalValueObserved(t *testing.T) {
	d := New[string](30 * time.Millisecond)
	defer d.Stop()

	d.Set("u")
	d.Set("un")
	d.Set("uni")
	d.Set("united")

	select {
	case v := <-d.C():
		assert.Equal(t, "united", v)
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}

	// No intermediate values follow the settled one.
	select {
	case v := <-d.C():
		t.Fatalf("unexpected extra value %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_EachSetRestartsTheWait(t *testing.T) {
	d := New[int](50 * time.Millisecond)
	defer d.Stop()

	d.Set(1)
	time.Sleep(30 * time.Millisecond)
	d.Set(2) // before the 50ms settle, cancels the pending delivery

	select {
	case v := <-d.C():
		t.Fatalf("value %d delivered before input settled", v)
	case <-time.After(30 * time.Millisecond):
	}

	select {
	case v := <-d.C():
		assert.Equal(t, 2, v)
	case <-time.After(time.Second):
		t.Fatal("settled value never delivered")
	}
}

func TestDebouncer_Stop_CancelsPendingDelivery(t *testing.T) {
	d := New[string](20 * time.Millisecond)

	d.Set("pending")
	d.Stop()

	select {
	case v := <-d.C():
		t.Fatalf("value %q delivered after Stop", v)
	case <-time.After(100 * time.Millisecond):
	}

	// Set after Stop is a no-op.
	d.Set("late")
	select {
	case v := <-d.C():
		t.Fatalf("value %q delivered after Stop", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_ZeroDelay_StillAsynchronous(t *testing.T) {
	d := New[int](0)
	defer d.Stop()

	d.Set(42)

	// Not delivered synchronously inside Set; the buffered channel fills on
	// the timer goroutine shortly after.
	select {
	case v := <-d.C():
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("zero-delay value never delivered")
	}
}

func TestDebouncer_LatestWins_WhenConsumerIsSlow(t *testing.T) {
	d := New[int](10 * time.Millisecond)
	defer d.Stop()

	d.Set(1)
	require.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.out) == 1
	}, time.Second, 5*time.Millisecond, "first value not buffered")

	// Consumer never drained the first value; the second settle replaces it.
	d.Set(2)

	select {
	case v := <-d.C():
		assert.Equal(t, 2, v)
	case <-time.After(time.Second):
		t.Fatal("replacement value never delivered")
	}
}

func TestDebouncer_WorksWithStructValues(t *testing.T) {
	type query struct {
		Search string
		Region string
	}

	d := New[query](10 * time.Millisecond)
	defer d.Stop()

	d.Set(query{Search: "uni", Region: "All"})
	d.Set(query{Search: "united", Region: "Europe"})

	select {
	case v := <-d.C():
		assert.Equal(t, query{Search: "united", Region: "Europe"}, v)
	case <-time.After(time.Second):
		t.Fatal("struct value never delivered")
	}
}
