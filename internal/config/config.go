package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig configures the hosted model endpoints used for chat and embeddings.
// Temperature is a pointer so an explicit 0 is distinguishable from unset.
type OpenAIConfig struct {
	APIKeyEnv      string   `yaml:"api_key_env"`
	ChatModel      string   `yaml:"chat_model"`
	EmbeddingModel string   `yaml:"embedding_model"`
	Temperature    *float32 `yaml:"temperature"`
	TimeoutSecs    int      `yaml:"timeout_secs"`
	BatchSize      int      `yaml:"batch_size"`
}

// SplitterConfig configures how documents are split into chunks.
type SplitterConfig struct {
	Type              string `yaml:"type"`
	ChunkSize         int    `yaml:"chunk_size"`
	ChunkOverlap      int    `yaml:"chunk_overlap"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
}

// IngestConfig configures the knowledge-base ingestion pass.
type IngestConfig struct {
	DocsDir          string `yaml:"docs_dir"`
	SummarySentences int    `yaml:"summary_sentences"`
}

// RetrievalConfig holds the retrieval fan-out and ranking knobs.
type RetrievalConfig struct {
	TopK           int     `yaml:"top_k"`
	FetchK         int     `yaml:"fetch_k"`
	MMRLambda      float64 `yaml:"mmr_lambda"`
	ScoreThreshold float64 `yaml:"score_threshold"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type       string        `yaml:"type"`
	PersistDir string        `yaml:"persist_dir"`
	Qdrant     *QdrantConfig `yaml:"qdrant,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Splitter    SplitterConfig    `yaml:"splitter"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./docbot.yaml first, then ~/.config/docbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/docbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "docbot.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docbot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		OpenAI: OpenAIConfig{
			APIKeyEnv:      "OPENAI_API_KEY",
			ChatModel:      "gpt-4o",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    float32Ptr(0.3),
			TimeoutSecs:    60,
			BatchSize:      32,
		},
		Splitter:    SplitterConfig{Type: "recursive", ChunkSize: 400, ChunkOverlap: 40},
		Ingest:      IngestConfig{DocsDir: "docs", SummarySentences: 3},
		Retrieval:   RetrievalConfig{TopK: 8, FetchK: 20, MMRLambda: 0.5},
		VectorStore: VectorStoreConfig{Type: "file", PersistDir: "index"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.Temperature == nil {
		cfg.OpenAI.Temperature = float32Ptr(0.3)
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = 60
	}
	if cfg.OpenAI.BatchSize == 0 {
		cfg.OpenAI.BatchSize = 32
	}
	if cfg.Splitter.Type == "" {
		cfg.Splitter.Type = "recursive"
	}
	if cfg.Splitter.ChunkSize == 0 {
		cfg.Splitter.ChunkSize = 400
	}
	if cfg.Splitter.ChunkOverlap == 0 {
		cfg.Splitter.ChunkOverlap = 40
	}
	if cfg.Splitter.SentencesPerChunk == 0 {
		cfg.Splitter.SentencesPerChunk = 5
	}
	if cfg.Ingest.DocsDir == "" {
		cfg.Ingest.DocsDir = "docs"
	}
	if cfg.Ingest.SummarySentences == 0 {
		cfg.Ingest.SummarySentences = 3
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 8
	}
	if cfg.Retrieval.FetchK == 0 {
		cfg.Retrieval.FetchK = 20
	}
	if cfg.Retrieval.MMRLambda == 0 {
		cfg.Retrieval.MMRLambda = 0.5
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "file"
	}
	if cfg.VectorStore.PersistDir == "" {
		cfg.VectorStore.PersistDir = "index"
	}
	if cfg.VectorStore.Qdrant != nil && cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
		cfg.VectorStore.Qdrant.TimeoutSecs = 15
	}
}

func float32Ptr(v float32) *float32 { return &v }
