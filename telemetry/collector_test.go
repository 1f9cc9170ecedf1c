package telemetry

import "testing"

func TestCollectorFlushesOnWindowBoundary(t *testing.T) {
	c := NewCollector(10)
	c.RecordKill()
	c.RecordKill()
	c.RecordAttackFired()
	c.RecordHit()

	if _, flushed := c.Tick(5, 1); flushed {
		t.Fatal("should not flush before the window elapses")
	}
	stats, flushed := c.Tick(5, 1)
	if !flushed {
		t.Fatal("should flush once the window elapses")
	}
	if stats.Kills != 2 {
		t.Fatalf("kills = %d, want 2", stats.Kills)
	}
	if stats.HitRate() != 1 {
		t.Fatalf("hit rate = %v, want 1", stats.HitRate())
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(10)
	c.RecordKill()
	c.Tick(10, 1)
	stats, flushed := c.Tick(10, 2)
	if !flushed {
		t.Fatal("should flush again at the next window boundary")
	}
	if stats.Kills != 0 {
		t.Fatalf("kills = %d, want 0 after reset", stats.Kills)
	}
}

func TestWindowStatsHitRateNoAttacks(t *testing.T) {
	var w WindowStats
	if w.HitRate() != 0 {
		t.Fatal("hit rate with no attacks fired should be 0, not NaN or panic")
	}
}
