package aggregates

type TimeWindow string

const (
	Between0dAnd1d TimeWindow = "Between0dAnd1d"
	Between1dAnd2d TimeWindow = "Between1dAnd2d"
	Between2dAnd3d TimeWindow = "Between2dAnd3d"
)

// StatusPerfect is the only status considered as a successful backup.
const StatusPerfect = "Perfect"

type BackupWindowStatus struct {
	TimeWindow TimeWindow
	Status     string
}

type AppType struct {
	AppType       string
	BackupHistory []BackupWindowStatus
}

type Suite struct {
	AppTypes []AppType
}

type CustomerRecord struct {
	CustomerName string
	Suites       []Suite
}
