package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) read(path, key string) (string, error) {
	secret, err := sm.client.Logical().Read(path)
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret not found at %s", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected secret format at %s", path)
	}

	value, ok := data[key].(string)
	if !ok {
		return "", fmt.Errorf("key %s missing at %s", key, path)
	}
	return value, nil
}

func (sm *SecretManager) GetDatabaseCredentials() (string, error) {
	return sm.read("secret/data/database", "connection_string")
}

func (sm *SecretManager) GetOpenAIAPIKey() (string, error) {
	return sm.read("secret/data/openai", "api_key")
}

func (sm *SecretManager) GetSendGridAPIKey() (string, error) {
	return sm.read("secret/data/sendgrid", "api_key")
}
