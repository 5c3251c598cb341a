package partiql

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/config"
)

// NewDynamoDB builds the DynamoDB client used by [Client].
//
// Credentials come from the default AWS chain (environment, shared config,
// instance role). All calls travel through httpClient, and the SDK retryer
// is disabled so a failure surfaces on the first attempt. A non-empty
// cfg.Endpoint overrides the service endpoint (e.g. DynamoDB Local at
// http://localhost:8000).
func NewDynamoDB(ctx context.Context, cfg *config.StoreConfig, httpClient aws.HTTPClient) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if httpClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
