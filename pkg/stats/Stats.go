package stats

import "path/filepath"
import "syscall"
import "time"

import "github.com/sirgallo/syncpay/pkg/logger"


var Log = clog.NewCustomLog(NAME)
var startTime = time.Now()

/*
	Calculate Current Stats:
		snapshot disk usage for the volume holding the ledger store along with
		process uptime, so the status surface can report whether a node is
		running low on space for its committed history
*/

func CalculateCurrentStats(storePath string) (*NodeStats, error) {
	var stat syscall.Statfs_t

	statErr := syscall.Statfs(filepath.Dir(storePath), &stat)
	if statErr != nil {
		Log.Error("error getting disk space for", storePath, ":", statErr.Error())
		return nil, statErr
	}

	blockSize := uint64(stat.Bsize)
	available := int64(stat.Bavail * blockSize)
	total := int64(stat.Blocks * blockSize)
	used := int64((stat.Blocks - stat.Bfree) * blockSize)

	return &NodeStats{
		AvailableDiskSpaceInBytes: available,
		TotalDiskSpaceInBytes: total,
		UsedDiskSpaceInBytes: used,
		UptimeInSeconds: int64(time.Since(startTime).Seconds()),
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}
