package interval

import (
	"fmt"
	"time"
)

// Interval represents a candle timeframe.
type Interval struct {
	Name     string
	Duration time.Duration
}

// Supported intervals configuration
var (
	Interval1m  = Interval{Name: "1m", Duration: time.Minute}
	Interval5m  = Interval{Name: "5m", Duration: 5 * time.Minute}
	Interval15m = Interval{Name: "15m", Duration: 15 * time.Minute}
	Interval30m = Interval{Name: "30m", Duration: 30 * time.Minute}
	Interval1h  = Interval{Name: "1h", Duration: time.Hour}
	Interval4h  = Interval{Name: "4h", Duration: 4 * time.Hour}
	Interval1d  = Interval{Name: "1d", Duration: 24 * time.Hour}
)

// AllIntervals lists every supported interval.
var AllIntervals = []Interval{
	Interval1m, Interval5m, Interval15m, Interval30m,
	Interval1h, Interval4h, Interval1d,
}

// Interval registry for lookup
var intervalRegistry = make(map[string]Interval)

func init() {
	for _, iv := range AllIntervals {
		intervalRegistry[iv.Name] = iv
	}
}

// GetInterval returns an interval by name.
func GetInterval(name string) (Interval, error) {
	iv, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, fmt.Errorf("unsupported interval: %s", name)
	}
	return iv, nil
}

// IsValidInterval checks if interval name is supported.
func IsValidInterval(name string) bool {
	_, exists := intervalRegistry[name]
	return exists
}

// GetAllIntervalNames returns all supported interval names.
func GetAllIntervalNames() []string {
	names := make([]string, 0, len(AllIntervals))
	for _, iv := range AllIntervals {
		names = append(names, iv.Name)
	}
	return names
}

// CalculateBucketTime calculates the start time of the interval bucket.
func (i Interval) CalculateBucketTime(timestamp time.Time) time.Time {
	switch i.Name {
	case "1d":
		// Truncate to start of day in UTC
		return time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(), 0, 0, 0, 0, timestamp.Location())
	default:
		return timestamp.Truncate(i.Duration)
	}
}

// GetBucketRange returns the start and end time of the interval bucket.
func (i Interval) GetBucketRange(timestamp time.Time) (start, end time.Time) {
	start = i.CalculateBucketTime(timestamp)
	end = start.Add(i.Duration)
	return start, end
}

// IsInBucket checks if two timestamps fall within the same bucket.
func (i Interval) IsInBucket(timestamp1, timestamp2 time.Time) bool {
	return i.CalculateBucketTime(timestamp1).Equal(i.CalculateBucketTime(timestamp2))
}

// Parse resolves a list of interval names, failing on the first unknown name.
func Parse(names []string) ([]Interval, error) {
	parsed := make([]Interval, 0, len(names))
	for _, name := range names {
		iv, err := GetInterval(name)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, iv)
	}
	return parsed, nil
}

// Shortest returns the interval with the smallest duration, or false when the
// slice is empty.
func Shortest(intervals []Interval) (Interval, bool) {
	if len(intervals) == 0 {
		return Interval{}, false
	}
	shortest := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.Duration < shortest.Duration {
			shortest = iv
		}
	}
	return shortest, true
}
