package ports

type InteractionMetrics interface {
	RecordSuccess(kind string)
	RecordRejected(kind string)
	RecordConflict()
	RecordFailure()
	RecordRecovered()
}
