package stats


type NodeStats struct {
	AvailableDiskSpaceInBytes int64  `json:"availableDiskSpaceInBytes"`
	TotalDiskSpaceInBytes     int64  `json:"totalDiskSpaceInBytes"`
	UsedDiskSpaceInBytes      int64  `json:"usedDiskSpaceInBytes"`
	UptimeInSeconds           int64  `json:"uptimeInSeconds"`
	Timestamp                 string `json:"timestamp"`
}

const NAME = "Stats"
