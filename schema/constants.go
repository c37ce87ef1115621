package schema

// Custom string types for type safety.
type (
	// Category is a classification label.
	Category string

	// Strategy names a classification rule set.
	Strategy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the table store.
	DatabaseBackend string
)

// Labels of the fixed-threshold ladder, in declared display order.
const (
	HighPopularityActive          Category = "High Popularity, Actively Maintained"
	HighPopularityLowMaintenance  Category = "High Popularity, Low Maintenance"
	NicheActive                   Category = "Niche, Actively Maintained"
	NewAndGrowing                 Category = "New and Growing"
	MatureLowActivity             Category = "Mature, Low Activity"
	InactiveOrAbandoned           Category = "Inactive or Abandoned"
	LowPopularityLowActivity      Category = "Low Popularity, Low Activity"
	ModeratePopularityLowActivity Category = "Moderate Popularity, Low Activity"
	ModeratelyMaintained          Category = "Moderately Maintained"
	Uncategorized                 Category = "Uncategorized"
)

// Labels of the median strategy. Only six of the eight popularity/activity/size
// combinations have a label.
const (
	HighHighLarge Category = "High Popularity, High Activity, Large Size"
	HighHighSmall Category = "High Popularity, High Activity, Small Size"
	HighLowLarge  Category = "High Popularity, Low Activity, Large Size"
	HighLowSmall  Category = "High Popularity, Low Activity, Small Size"
	LowHighLarge  Category = "Low Popularity, High Activity, Large Size"
	LowHighSmall  Category = "Low Popularity, High Activity, Small Size"
)

// Unmatched is the empty label returned when the median strategy has no label
// for a combination.
const Unmatched Category = ""

// All strategies supported.
const (
	StandardStrategy Strategy = "standard" // default
	ScaledStrategy   Strategy = "scaled"
	MedianStrategy   Strategy = "median"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All table store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// FixedCategoryOrder is the display order of the fixed-threshold labels.
// Consumers that sort or group by category rely on this order.
var FixedCategoryOrder = []Category{
	HighPopularityActive,
	HighPopularityLowMaintenance,
	NicheActive,
	NewAndGrowing,
	MatureLowActivity,
	InactiveOrAbandoned,
	LowPopularityLowActivity,
	ModeratePopularityLowActivity,
	ModeratelyMaintained,
	Uncategorized,
}

// MedianCategoryOrder is the display order of the median strategy labels.
var MedianCategoryOrder = []Category{
	HighHighLarge,
	HighHighSmall,
	HighLowLarge,
	HighLowSmall,
	LowHighLarge,
	LowHighSmall,
}

// AllStrategies returns a list of all supported strategies.
var AllStrategies = []Strategy{StandardStrategy, ScaledStrategy, MedianStrategy}

// ValidStrategies lists all valid strategies.
var ValidStrategies = map[Strategy]struct{}{
	StandardStrategy: {},
	ScaledStrategy:   {},
	MedianStrategy:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid table store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CategoryOrder returns the declared display order for a strategy.
func CategoryOrder(strategy Strategy) []Category {
	if strategy == MedianStrategy {
		return MedianCategoryOrder
	}
	return FixedCategoryOrder
}

// CategoryRank returns the position of c in the display order of strategy,
// or -1 when c is not one of its labels.
func CategoryRank(strategy Strategy, c Category) int {
	for i, known := range CategoryOrder(strategy) {
		if known == c {
			return i
		}
	}
	return -1
}
