package config

import "time"

const defaultSnapshotTTL = 24 * time.Hour

// CalculateDuration converts a Timer into a duration.
func CalculateDuration(timer Timer) time.Duration {
	return time.Duration(CalculateMillisecondsOfPeriod(timer)) * time.Millisecond
}

func CalculateMillisecondsOfPeriod(timer Timer) uint64 {
	return uint64(timer.Days)*24*60*60*1000 +
		uint64(timer.Hours)*60*60*1000 +
		uint64(timer.Minutes)*60*1000 +
		uint64(timer.Seconds)*1000
}

// GetSnapshotTTL is how long a stored IX-F snapshot stays in the shared cache.
// An empty timer falls back to one day.
func GetSnapshotTTL() time.Duration {
	ttl := CalculateDuration(GetConfig().IXF.SnapshotTTL)
	if ttl <= 0 {
		return defaultSnapshotTTL
	}
	return ttl
}
