package formats

import "github.com/zjrosen/ebi/internal/registry"

// Catalog is the catalog of every supported format. Its order decides which
// handler wins when several accept the same file.
var Catalog = registry.NewCatalog(
	EventLogHandler,
	LanguageHandler,
	StochasticLanguageHandler,
)
