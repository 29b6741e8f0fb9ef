package aggregates

type Alert struct {
	CustomerName string
	AppType      string
	Windows      []BackupWindowStatus
	Company      Company
}
