package lib

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// AWSSDKClient holds the service clients built from one shared SDK config.
type AWSSDKClient struct {
	innerConfig aws.Config
	innerSES    *ses.Client
	innerSQS    *sqs.Client
}

// NewAWSSDKClient resolves credentials and region from the default chain
// (environment, shared config, instance role).
func NewAWSSDKClient(ctx context.Context) (*AWSSDKClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading default aws config: %w", err)
	}
	return &AWSSDKClient{innerConfig: cfg}, nil
}

func (c *AWSSDKClient) SES() *ses.Client {
	if c.innerSES == nil {
		c.innerSES = ses.NewFromConfig(c.innerConfig)
	}
	return c.innerSES
}

func (c *AWSSDKClient) SQS() *sqs.Client {
	if c.innerSQS == nil {
		c.innerSQS = sqs.NewFromConfig(c.innerConfig)
	}
	return c.innerSQS
}
