package app

import "github.com/rise-and-shine/cqrskit/container"

// Service identifiers bound by NewContainer.
const (
	IDConfig          container.ID = "config"
	IDLogger          container.ID = "logger"
	IDMetricsRegistry container.ID = "metrics_registry"
	IDPagination      container.ID = "pagination_config"

	IDDatabase       container.ID = "database"
	IDUserRepository container.ID = "user_repository"

	IDEventBus       container.ID = "event_bus"
	IDEventPublisher container.ID = "event_publisher"
	IDBrokerSink     container.ID = "broker_sink"

	IDCommandBus container.ID = "command_bus"
	IDQueryBus   container.ID = "query_bus"

	IDAuditTrail      container.ID = "audit_trail"
	IDStatistics      container.ID = "statistics"
	IDWelcomeNotifier container.ID = "welcome_notifier"
	IDUserService     container.ID = "user_service"

	IDHTTPServer container.ID = "http_server"
)
