package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/oredesk/ops-api/internal/types"
)

func TestDispatchReadYourWrite(t *testing.T) {
	st := New()
	st.Dispatch(CreateOrder{Order: types.Order{ID: "ORD_1", Type: types.OrderTypeBuy}})

	if _, ok := st.Snapshot().Orders["ORD_1"]; !ok {
		t.Fatal("dispatched order not visible in next snapshot")
	}
}

func TestSubscribeNotifiedSynchronously(t *testing.T) {
	st := New()
	var seen []string
	unsubscribe := st.Subscribe(func(s Snapshot) {
		for id := range s.Orders {
			seen = append(seen, id)
		}
	})

	st.Dispatch(CreateOrder{Order: types.Order{ID: "ORD_1", Type: types.OrderTypeBuy}})
	if len(seen) != 1 || seen[0] != "ORD_1" {
		t.Fatalf("subscriber saw %v, want [ORD_1]", seen)
	}

	unsubscribe()
	st.Dispatch(CreateOrder{Order: types.Order{ID: "ORD_2", Type: types.OrderTypeSell}})
	if len(seen) != 1 {
		t.Error("subscriber notified after unsubscribe")
	}
}

func TestSubscribersNotifiedInRegistrationOrder(t *testing.T) {
	st := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		st.Subscribe(func(Snapshot) {
			order = append(order, i)
		})
	}

	for d := 0; d < 3; d++ {
		order = order[:0]
		st.Dispatch(AddAppActivity{Activity: types.AppActivity{ID: fmt.Sprintf("ACT_%d", d)}})
		for i, got := range order {
			if got != i {
				t.Fatalf("dispatch %d: notification order = %v", d, order)
			}
		}
		if len(order) != 5 {
			t.Fatalf("dispatch %d: notified %d subscribers, want 5", d, len(order))
		}
	}
}

func TestConcurrentDispatchesAllApplied(t *testing.T) {
	st := New()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.Dispatch(CreateOrder{Order: types.Order{
				ID:   fmt.Sprintf("ORD_%d", i),
				Type: types.OrderTypeBuy,
			}})
		}(i)
	}
	wg.Wait()

	if got := len(st.Snapshot().Orders); got != n {
		t.Fatalf("orders = %d, want %d", got, n)
	}
}
