package notify

import (
	"testing"
	"time"
)

func TestCenter_ActiveClonesAndOrders(t *testing.T) {
	c := NewCenter()
	c.Error("boom")
	c.Success("saved")

	active := c.Active(DefaultTTL)
	if len(active) != 2 {
		t.Fatalf("Active = %d items, want 2", len(active))
	}
	if active[0].Message != "boom" || active[0].Level != Error {
		t.Fatalf("first = %+v, want oldest error first", active[0])
	}

	active[1].Message = "mutated"
	if again := c.Active(DefaultTTL); again[1].Message != "saved" {
		t.Fatalf("Active should clone; stored item = %q", again[1].Message)
	}
}

func TestCenter_ActiveDropsExpired(t *testing.T) {
	c := NewCenter()
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Info("old")
	current = current.Add(10 * time.Second)
	c.Info("fresh")

	active := c.Active(DefaultTTL)
	if len(active) != 1 || active[0].Message != "fresh" {
		t.Fatalf("Active = %+v, want only the fresh item", active)
	}
}

func TestCenter_EmptyMessageIgnored(t *testing.T) {
	c := NewCenter()
	c.Notify(Error, "")
	if got := c.Active(DefaultTTL); got != nil {
		t.Fatalf("Active = %+v, want nil", got)
	}
}
