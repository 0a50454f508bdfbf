package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

// setBaseEnv sets the minimum required variables so Load succeeds, with the
// database path redirected into the test's temp directory.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "repoqa.db"))
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.QdrantVectorSize != 768 {
		t.Errorf("QdrantVectorSize = %d, want 768", cfg.QdrantVectorSize)
	}
	if cfg.ContentSource != "github" {
		t.Errorf("ContentSource = %q, want github", cfg.ContentSource)
	}
	if cfg.MaxChunkSize != 500 {
		t.Errorf("MaxChunkSize = %d, want 500", cfg.MaxChunkSize)
	}
	if cfg.EmbedBatchSize != 10 {
		t.Errorf("EmbedBatchSize = %d, want 10", cfg.EmbedBatchSize)
	}
	if cfg.EmbedBatchDelay != 300*time.Millisecond {
		t.Errorf("EmbedBatchDelay = %v, want 300ms", cfg.EmbedBatchDelay)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAX_CHUNK_SIZE", "800")
	t.Setenv("EMBED_BATCH_SIZE", "4")
	t.Setenv("EMBED_BATCH_DELAY_MS", "50")
	t.Setenv("RAG_TOP_K", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("QDRANT_COLLECTION", "my-chunks")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxChunkSize != 800 {
		t.Errorf("MaxChunkSize = %d, want 800", cfg.MaxChunkSize)
	}
	if cfg.EmbedBatchSize != 4 {
		t.Errorf("EmbedBatchSize = %d, want 4", cfg.EmbedBatchSize)
	}
	if cfg.EmbedBatchDelay != 50*time.Millisecond {
		t.Errorf("EmbedBatchDelay = %v, want 50ms", cfg.EmbedBatchDelay)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.QdrantCollection != "my-chunks" {
		t.Errorf("QdrantCollection = %q, want my-chunks", cfg.QdrantCollection)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": ""},
		},
		{
			name: "non-numeric vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": "lots"},
		},
		{
			name: "negative vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": "-1"},
		},
		{
			name: "zero chunk size",
			env:  map[string]string{"MAX_CHUNK_SIZE": "0"},
		},
		{
			name: "negative batch delay",
			env:  map[string]string{"EMBED_BATCH_DELAY_MS": "-10"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"LOG_LEVEL": "verbose"},
		},
		{
			name: "unknown content source",
			env:  map[string]string{"CONTENT_SOURCE": "ftp"},
		},
		{
			name: "local source without root",
			env:  map[string]string{"CONTENT_SOURCE": "local", "CONTENT_ROOT": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("Load() expected an error")
			}
		})
	}
}

func TestLoadLocalSource(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONTENT_SOURCE", "local")
	t.Setenv("CONTENT_ROOT", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ContentSource != "local" {
		t.Errorf("ContentSource = %q, want local", cfg.ContentSource)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
