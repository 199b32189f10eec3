package config

import (
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingURI(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database uri")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Database.Database != "retail_store" {
		t.Errorf("database = %q, want retail_store", cfg.Database.Database)
	}
	if cfg.Database.Collection != "products" {
		t.Errorf("collection = %q, want products", cfg.Database.Collection)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("embedding model = %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Errorf("chat model = %q", cfg.OpenAI.ChatModel)
	}
	if cfg.HTTP.ReadTimeoutSec <= 0 || cfg.HTTP.WriteTimeoutSec <= 0 || cfg.HTTP.ShutdownSec <= 0 {
		t.Error("http timeouts must default to positive values")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Database: "shop", Collection: "items"},
		OpenAI:   OpenAIConfig{EmbeddingModel: "text-embedding-3-small"},
	}
	cfg.ApplyDefaults()

	if cfg.Database.Database != "shop" || cfg.Database.Collection != "items" {
		t.Errorf("explicit database settings overridden: %+v", cfg.Database)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("explicit model overridden: %q", cfg.OpenAI.EmbeddingModel)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RETAIL_TEST_URI", "mongodb://db:27017")

	tests := []struct {
		in   string
		want string
	}{
		{in: "uri: ${RETAIL_TEST_URI}", want: "uri: mongodb://db:27017"},
		{in: "uri: ${RETAIL_TEST_MISSING:-fallback}", want: "uri: fallback"},
		{in: "uri: ${RETAIL_TEST_URI:-fallback}", want: "uri: mongodb://db:27017"},
		{in: "uri: ${RETAIL_TEST_MISSING}", want: "uri: "},
		{in: "plain: value", want: "plain: value"},
	}

	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
