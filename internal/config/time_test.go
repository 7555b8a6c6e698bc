package config

import (
	"testing"
	"time"
)

func TestCalculateMillisecondsOfPeriod(t *testing.T) {
	timer := Timer{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
	want := uint64((24*60*60 + 2*60*60 + 3*60 + 4) * 1000)

	if got := CalculateMillisecondsOfPeriod(timer); got != want {
		t.Fatalf("CalculateMillisecondsOfPeriod returned %d, want %d", got, want)
	}
}

func TestGetSnapshotTTL(t *testing.T) {
	orig := GetConfig()
	t.Cleanup(func() { configValue.Store(orig) })

	t.Run("configured duration", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IXF.SnapshotTTL = Timer{Hours: 2, Minutes: 30}
		configValue.Store(cfg)
		if got := GetSnapshotTTL(); got != 150*time.Minute {
			t.Fatalf("GetSnapshotTTL returned %s, want 2h30m", got)
		}
	})

	t.Run("empty timer falls back to a day", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IXF.SnapshotTTL = Timer{}
		configValue.Store(cfg)
		if got := GetSnapshotTTL(); got != 24*time.Hour {
			t.Fatalf("GetSnapshotTTL returned %s, want 24h", got)
		}
	})
}
