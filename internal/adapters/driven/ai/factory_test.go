package ai

import (
	"strings"
	"testing"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantErr     bool
		errContains string
	}{
		{
			name:        "nil settings returns error",
			settings:    nil,
			wantErr:     true,
			errContains: "nil",
		},
		{
			name: "cohere provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderCohere,
				APIKey:   "test-key",
				Model:    "embed-english-v3.0",
			},
			wantErr: false,
		},
		{
			name: "gemini provider returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
			},
			wantErr:     true,
			errContains: "generation provider",
		},
		{
			name: "unknown provider returns error",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantErr:     true,
			errContains: "unsupported embedding provider",
		},
		{
			name: "cohere without key returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderCohere,
			},
			wantErr:     true,
			errContains: "API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected service, got nil")
			}
			svc.Close()
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.LLMSettings
		wantErr     bool
		errContains string
	}{
		{
			name:        "nil settings returns error",
			settings:    nil,
			wantErr:     true,
			errContains: "nil",
		},
		{
			name: "gemini provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
				Model:    "gemini-2.5-flash",
			},
			wantErr: false,
		},
		{
			name: "cohere provider returns error",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderCohere,
				APIKey:   "test-key",
			},
			wantErr:     true,
			errContains: "embedding provider",
		},
		{
			name: "unknown provider returns error",
			settings: &domain.LLMSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantErr:     true,
			errContains: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected service, got nil")
			}
			svc.Close()
		})
	}
}

func TestCreateAndValidateEmbeddingService_Unconfigured(t *testing.T) {
	_, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{})
	if err == nil {
		t.Fatal("expected error for unconfigured settings")
	}
}

func TestCreateAndValidateLLMService_Unconfigured(t *testing.T) {
	_, err := CreateAndValidateLLMService(&domain.LLMSettings{})
	if err == nil {
		t.Fatal("expected error for unconfigured settings")
	}
}
