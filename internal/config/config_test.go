package config

import "testing"

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "postgres",
			URI:    "mongodb://localhost:27017",
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid driver")
	}

	expected := `database.driver must be "mongo" or "memory", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidDrivers(t *testing.T) {
	cases := []struct {
		name string
		db   DatabaseConfig
	}{
		{"mongo", DatabaseConfig{Driver: "mongo", URI: "mongodb://localhost:27017"}},
		{"memory", DatabaseConfig{Driver: "memory", CatalogPath: "testdata/resources.json"}},
	}

	for _, tc := range cases {
		t.Run("driver="+tc.name, func(t *testing.T) {
			cfg := Config{
				HTTP:     HTTPConfig{Port: 8080},
				Database: tc.db,
			}

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid driver %q: %v", tc.name, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Driver: "mongo",
			URI:    "mongodb://localhost:27017",
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingMongoURI(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "mongo"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing mongo uri")
	}
}

func TestValidate_MissingCatalogPath(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "memory"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing catalog path")
	}
}

func TestValidate_NegativeLimits(t *testing.T) {
	base := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "mongo",
			URI:    "mongodb://localhost:27017",
		},
	}

	cfg := base
	cfg.Search.MaxPageSize = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative search.max_page_size")
	}

	cfg = base
	cfg.Batch.MaxPairs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative batch.max_pairs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "mongo" {
		t.Errorf("expected Driver='mongo', got %q", cfg.Database.Driver)
	}
	if cfg.Database.Database != "gem5-vision" {
		t.Errorf("expected Database='gem5-vision', got %q", cfg.Database.Database)
	}
	if cfg.Database.Collection != "resources" {
		t.Errorf("expected Collection='resources', got %q", cfg.Database.Collection)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.QueryTimeoutSec != 10 {
		t.Errorf("expected QueryTimeoutSec=10, got %d", cfg.Database.QueryTimeoutSec)
	}
	if cfg.Search.DefaultPageSize != 10 {
		t.Errorf("expected DefaultPageSize=10, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 0 {
		t.Errorf("expected MaxPageSize=0 (unlimited), got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Batch.MaxPairs != 0 {
		t.Errorf("expected MaxPairs=0 (unlimited), got %d", cfg.Batch.MaxPairs)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{
			Driver:           "memory",
			Database:         "catalog-staging",
			Collection:       "records",
			ReadinessTimeout: 15,
			QueryTimeoutSec:  3,
		},
		Search: SearchConfig{DefaultPageSize: 50, MaxPageSize: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected Driver='memory', got %q", cfg.Database.Driver)
	}
	if cfg.Database.Database != "catalog-staging" {
		t.Errorf("expected Database='catalog-staging', got %q", cfg.Database.Database)
	}
	if cfg.Database.QueryTimeoutSec != 3 {
		t.Errorf("expected QueryTimeoutSec=3, got %d", cfg.Database.QueryTimeoutSec)
	}
	if cfg.Search.DefaultPageSize != 50 {
		t.Errorf("expected DefaultPageSize=50, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 500 {
		t.Errorf("expected MaxPageSize=500, got %d", cfg.Search.MaxPageSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RESOURCES_TEST_URI", "mongodb://db.example.com:27017")

	in := []byte("uri: ${RESOURCES_TEST_URI}\nname: ${RESOURCES_TEST_MISSING:-gem5-vision}\n")
	out := string(expandEnvVars(in))

	expected := "uri: mongodb://db.example.com:27017\nname: gem5-vision\n"
	if out != expected {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, expected)
	}
}
