// Package connection owns the process wide DynamoDB client. A Handle is
// opened once at startup, handed to the repositories and closed at shutdown.
package connection

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	appConfig "philcali.me/inventory/internal/config"
)

const PING_TIMEOUT = 5 * time.Second

type Handle struct {
	Client    *dynamodb.Client
	TableName string
	transport *http.Transport
}

func loadOptions(cfg appConfig.DatabaseConfig, httpClient *awshttp.BuildableClient) []func(*config.LoadOptions) error {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
		config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.URL, SigningRegion: region}, nil
			})),
	}
	if cfg.AccessKeyId != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.SecretAccessKey, "")))
	}
	return options
}

// Open builds the client and describes the table, so an unreachable store or
// a missing table fails startup.
func Open(ctx context.Context, cfg appConfig.DatabaseConfig) (*Handle, error) {
	handle := &Handle{TableName: cfg.Name}
	// AWS_CA_BUNDLE is applied through transport options, so the client must
	// stay buildable. The built transport is kept for Close.
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		handle.transport = tr
	})
	awsConfig, err := config.LoadDefaultConfig(ctx, loadOptions(cfg, httpClient)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	handle.Client = dynamodb.NewFromConfig(awsConfig)
	if err := handle.Ping(ctx); err != nil {
		handle.Close()
		return nil, err
	}
	return handle, nil
}

func (h *Handle) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PING_TIMEOUT)
	defer cancel()
	_, err := h.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(h.TableName),
	})
	if err != nil {
		return fmt.Errorf("failed to reach table %s: %w", h.TableName, err)
	}
	return nil
}

// Close releases pooled connections. The client must not be used afterwards.
func (h *Handle) Close() error {
	if h.transport != nil {
		h.transport.CloseIdleConnections()
	}
	return nil
}
