package config

import (
	"reflect"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Store.Driver != StoreMongo {
		t.Errorf("expected default store %q, got %q", StoreMongo, cfg.Store.Driver)
	}
	if cfg.Sales.DeletePolicy != "restrict" {
		t.Errorf("expected restrict delete policy, got %q", cfg.Sales.DeletePolicy)
	}
	if !cfg.Sales.RecordTotals {
		t.Error("expected totals to be recorded by default")
	}
	if len(cfg.RabbitMQ.ExchangeConfigs) != 2 {
		t.Fatalf("expected sale and product exchanges, got %d", len(cfg.RabbitMQ.ExchangeConfigs))
	}
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", StorePostgres)
	t.Setenv("SALES_RECORD_TOTALS", "false")
	t.Setenv("PRODUCT_DELETE_POLICY", "cascade")
	t.Setenv("HTTP_CORS_ORIGINS", "http://localhost:3000, https://aceitera.example ,")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := NewConfig()

	if cfg.Store.Driver != StorePostgres {
		t.Errorf("expected %q, got %q", StorePostgres, cfg.Store.Driver)
	}
	if cfg.Sales.RecordTotals {
		t.Error("expected totals disabled")
	}
	if cfg.Sales.DeletePolicy != "cascade" {
		t.Errorf("expected cascade, got %q", cfg.Sales.DeletePolicy)
	}
	wantOrigins := []string{"http://localhost:3000", "https://aceitera.example"}
	if !reflect.DeepEqual(cfg.HTTP.CORSOrigins, wantOrigins) {
		t.Errorf("expected origins %v, got %v", wantOrigins, cfg.HTTP.CORSOrigins)
	}
	if cfg.HTTP.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.HTTP.RequestTimeout)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("expected 2 kafka brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestGetEnvHelpers_FallBackOnBadValues(t *testing.T) {
	t.Setenv("ACEITERA_INT", "not-a-number")
	t.Setenv("ACEITERA_LIST", " , ")
	t.Setenv("ACEITERA_BOOL", "TRUE")

	if got := getIntEnv("ACEITERA_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := getListEnv("ACEITERA_LIST", []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("expected fallback list, got %v", got)
	}
	if !getBoolEnv("ACEITERA_BOOL", false) {
		t.Error("expected TRUE to parse as true")
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("ACEITERA_TIMEOUT", " 250 ")
	t.Setenv("ACEITERA_BAD_BOOL", "maybe")

	if got := getDurationEnv("ACEITERA_TIMEOUT", 10, time.Millisecond); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", got)
	}
	if got := getDurationEnv("ACEITERA_UNSET_TIMEOUT", 5, time.Second); got != 5*time.Second {
		t.Errorf("expected default 5s, got %s", got)
	}
	if !getBoolEnv("ACEITERA_BAD_BOOL", true) {
		t.Error("expected malformed bool to keep its default")
	}
}
