package config

const (
	// TopicRunLifecycle is the NSQ topic for pipeline run lifecycle events
	// (started, completed, failed).
	TopicRunLifecycle = "catalog.run"

	// TopicExport is the NSQ topic for export download events.
	TopicExport = "catalog.export"
)
