package clocksync

import "math"
import "sort"
import "time"

import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Clock Sync Utils


/*
	reject samples whose round trip delay exceeds the given multiple of the
	median delay across the window
*/

func rejectOutliers(samples []ClockSample, outlierMultiple float64) []ClockSample {
	delays := utils.Map[ClockSample, time.Duration](samples, func(sample ClockSample) time.Duration { return sample.Delay })
	medDelay := medianDuration(delays)
	if medDelay <= 0 { return samples }

	threshold := time.Duration(float64(medDelay) * outlierMultiple)
	return utils.Filter[ClockSample](samples, func(sample ClockSample) bool { return sample.Delay <= threshold })
}

func medianDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 { return 0 }

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted) % 2 == 1 { return sorted[mid] }
	return (sorted[mid - 1] + sorted[mid]) / 2
}

/*
	spread of the offsets around their median, used as the accuracy estimate
	for a recomputation cycle
*/

func offsetSpread(offsets []time.Duration) time.Duration {
	if len(offsets) < 2 { return 0 }

	med := medianDuration(offsets)

	var sumSquares float64
	for _, offset := range offsets {
		diff := float64(offset - med)
		sumSquares = sumSquares + diff * diff
	}

	return time.Duration(math.Sqrt(sumSquares / float64(len(offsets) - 1)))
}

/*
	Get Clock Offsets View:
		snapshot the per peer estimates for the status surface
*/

func (csService *ClockSyncService) GetClockOffsetsView() map[string]ClockOffsetSnapshot {
	view := make(map[string]ClockOffsetSnapshot)

	for host, record := range csService.records {
		record.mutex.Lock()
		view[host] = ClockOffsetSnapshot{
			OffsetInMilliseconds: float64(record.smoothedOffset) / float64(time.Millisecond),
			AccuracyInMilliseconds: float64(record.accuracy) / float64(time.Millisecond),
			DriftPPM: record.driftPerSecond * 1e6,
			Trusted: record.trusted,
		}
		record.mutex.Unlock()
	}

	return view
}
