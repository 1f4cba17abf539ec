package ports

// SchedulerService runs periodic maintenance jobs. It never drives round
// finalization.
type SchedulerService interface {
	Start()
	Stop()

	ScheduleTask(interval int64, immediate bool, task func()) error
}
