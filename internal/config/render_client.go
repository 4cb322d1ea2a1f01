package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SecretStorage espelha segredos em um armazenamento externo
type SecretStorage interface {
	AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error
}

type AddOrUpdateSecretRequest struct {
	Content string `json:"content"`
}

// RenderClient grava segredos como secret files de um serviço no Render
type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    "https://api.render.com/v1",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *RenderClient) AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error {
	url := fmt.Sprintf("%s/services/%s/secret-files/%s", c.BaseURL, serviceID, secretName)

	jsonData, err := json.Marshal(AddOrUpdateSecretRequest{Content: secretContent})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("config: error add or update secret: %s", body)
	}
	return nil
}
