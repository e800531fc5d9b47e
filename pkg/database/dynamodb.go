package database

import (
	"product-app/pkg/cloud"
	"product-app/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewDynamoClient creates a DynamoDB client, pointed at AWS_ENDPOINT when set.
func NewDynamoClient(cfg aws.Config, c utils.AWSConfig) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint := cloud.Endpoint(c); endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
}
