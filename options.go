package resources

import "time"

// Option configures Open.
type Option func(*catalogConfig)

type catalogConfig struct {
	driver string // "mongo", "memory", or "records"

	// Mongo parameters.
	uri          string
	database     string
	collection   string
	queryTimeout time.Duration

	// Memory parameters.
	catalogPath string
	records     []Resource

	readiness time.Duration

	defaultPageSize int
	maxPageSize     int
	maxBatchSize    int
}

// WithMongo points the catalog at a MongoDB collection.
func WithMongo(uri, database, collection string) Option {
	return func(c *catalogConfig) {
		c.driver = "mongo"
		c.uri = uri
		c.database = database
		c.collection = collection
	}
}

// WithQueryTimeout bounds each store operation. Mongo driver only; the
// memory driver answers from local state.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *catalogConfig) {
		c.queryTimeout = d
	}
}

// WithMemory loads the catalog from a JSON file and serves it from memory.
func WithMemory(path string) Option {
	return func(c *catalogConfig) {
		c.driver = "memory"
		c.catalogPath = path
	}
}

// WithRecords serves the given records from memory. Useful in tests and
// for embedding a fixed catalog in a binary.
func WithRecords(records []Resource) Option {
	return func(c *catalogConfig) {
		c.driver = "records"
		c.records = records
	}
}

// WithReadinessTimeout overrides the default 10s wait for the store to
// answer its first ping.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *catalogConfig) {
		c.readiness = d
	}
}

// WithPagination sets the default and maximum search page size.
// Zero max means unlimited.
func WithPagination(defaultSize, maxSize int) Option {
	return func(c *catalogConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	}
}

// WithMaxBatchSize caps the number of pairs per FindBatch call.
// Zero means unlimited.
func WithMaxBatchSize(n int) Option {
	return func(c *catalogConfig) {
		c.maxBatchSize = n
	}
}

// FindOption narrows a Find call.
type FindOption func(*findConfig)

type findConfig struct {
	version string
}

// WithVersion pins the lookup to one exact resource_version.
func WithVersion(v string) FindOption {
	return func(c *findConfig) {
		c.version = v
	}
}
