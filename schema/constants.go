package schema

// Custom string types for type safety.
type (
	// PriorityLabel represents the discrete urgency label of a request.
	PriorityLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for a store.
	DatabaseBackend string

	// RequestStatus represents the lifecycle state of a game request.
	RequestStatus string
)

// Priority labels, from most to least urgent.
const (
	HotLabel        PriorityLabel = "Hot"
	NormalLabel     PriorityLabel = "Normal"
	BatchLaterLabel PriorityLabel = "Batch Later"
)

// Label thresholds on the [0,1] priority score.
const (
	HotThreshold    = 0.75
	NormalThreshold = 0.45
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All request statuses supported.
const (
	OpenStatus      RequestStatus = "open"
	FulfilledStatus RequestStatus = "fulfilled"
)

// DefaultBatchSize is the number of objects sent per search index call.
const DefaultBatchSize = 1000

// DefaultChipLimit is how many canonical tags a card renders before the overflow counter.
const DefaultChipLimit = 2

// AllPriorityLabels returns the labels in urgency order.
var AllPriorityLabels = []PriorityLabel{HotLabel, NormalLabel, BatchLaterLabel}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRequestStatuses lists all valid request statuses.
var ValidRequestStatuses = map[RequestStatus]struct{}{
	OpenStatus:      {},
	FulfilledStatus: {},
}
