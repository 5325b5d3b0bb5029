package config

import (
	"context"

	aws_handler "tradesim/src/utils/aws"
)

// ResolveSecrets replaces secret-id placeholders in the config with values
// fetched from AWS Secrets Manager. It is a no-op when no secret ids are set,
// so local setups never need AWS credentials.
func ResolveSecrets(ctx context.Context, cfg *Config) error {
	if cfg.Databases.SQL.PasswordSecretID == "" && cfg.ExternalClients.Quotes.APIKeySecretID == "" {
		return nil
	}

	handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return err
	}

	if id := cfg.Databases.SQL.PasswordSecretID; id != "" {
		value, err := handler.SecretManager.GetSecretValue(ctx, id)
		if err != nil {
			return err
		}
		cfg.Databases.SQL.Password = value
	}

	if id := cfg.ExternalClients.Quotes.APIKeySecretID; id != "" {
		value, err := handler.SecretManager.GetSecretValue(ctx, id)
		if err != nil {
			return err
		}
		cfg.ExternalClients.Quotes.APIKey = value
	}

	return nil
}
