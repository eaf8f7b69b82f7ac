package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	appConfig "philcali.me/inventory/internal/config"
)

const LOCAL_DDB_PORT = 8000

// Set to reuse an already running DynamoDB Local instead of spawning one.
const LOCAL_DDB_ENDPOINT_ENV = "DYNAMODB_LOCAL_ENDPOINT"

func CreateTable(client *dynamodb.Client, tableName string) (string, error) {
	keySchema := []types.KeySchemaElement{
		{
			AttributeName: aws.String("PK"),
			KeyType:       types.KeyTypeHash,
		},
		{
			AttributeName: aws.String("SK"),
			KeyType:       types.KeyTypeRange,
		},
	}
	atrributes := []types.AttributeDefinition{
		{
			AttributeName: aws.String("PK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String("SK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
	}
	output, err := client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName:            aws.String(tableName),
		KeySchema:            keySchema,
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: atrributes,
	})
	if err != nil {
		return "", err
	}
	waiter := dynamodb.NewTableExistsWaiter(client, func(tewo *dynamodb.TableExistsWaiterOptions) {
		tewo.LogWaitAttempts = true
	})
	_, err = waiter.WaitForOutput(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: output.TableDescription.TableName,
	}, time.Second*5)
	return *output.TableDescription.TableName, err
}

type LocalDynamoServer struct {
	Process *os.Process
	Port    int
	URL     string
}

// DatabaseConfig points the application config at the local server.
func (l *LocalDynamoServer) DatabaseConfig(tableName string) appConfig.DatabaseConfig {
	return appConfig.DatabaseConfig{
		URL:             l.URL,
		Name:            tableName,
		Region:          "us-east-1",
		AccessKeyId:     "fake",
		SecretAccessKey: "fake",
	}
}

func (l *LocalDynamoServer) CreateLocalClient() (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRetryMaxAttempts(10),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: l.URL}, nil
			})),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     "fake",
				SecretAccessKey: "fake",
				SessionToken:    "fake",
			}}),
	)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}

// StartLocalServer runs DynamoDB Local from <module>/dynamodb. The test is
// skipped when neither java nor the jar are available.
func StartLocalServer(port int, t *testing.T) *LocalDynamoServer {
	t.Helper()
	if endpoint := os.Getenv(LOCAL_DDB_ENDPOINT_ENV); endpoint != "" {
		return &LocalDynamoServer{URL: endpoint}
	}
	root, err := moduleRoot()
	if err != nil {
		t.Skipf("Skipping, could not locate module root: %s", err)
	}
	jar := filepath.Join(root, "dynamodb", "DynamoDBLocal.jar")
	if _, err := os.Stat(jar); err != nil {
		t.Skipf("Skipping, DynamoDB Local is not installed at %s", jar)
	}
	java, err := exec.LookPath("java")
	if err != nil {
		t.Skip("Skipping, java is not on the PATH")
	}
	cmd := exec.Command(
		java, fmt.Sprintf("-Djava.library.path=%s", filepath.Join(root, "dynamodb", "DynamoDBLocal_lib")),
		"-jar", jar,
		"-port", strconv.Itoa(port),
		"-inMemory",
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start local DDB server: %s", err)
	}
	t.Cleanup(func() {
		if err := cmd.Process.Kill(); err != nil {
			t.Errorf("Failed to terminate local DDB server: %s", err)
		}
	})
	return &LocalDynamoServer{
		Process: cmd.Process,
		Port:    port,
		URL:     fmt.Sprintf("http://localhost:%d", port),
	}
}
