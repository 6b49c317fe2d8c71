// Package compute lists EC2 instances with Unity Catalog vended credentials.
package compute

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/dbxapps/ucapp/internal/cloud/credentials"
)

// Instance is one row of the credential viewer's result table.
type Instance struct {
	Name       string
	InstanceID string
	State      string
	Type       string
}

// DescribeInstancesAPI is the slice of the EC2 client the lister needs.
type DescribeInstancesAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// NewClient builds an EC2 client for the region whose credentials come from
// Unity Catalog credential vending.
func NewClient(ctx context.Context, vendor credentials.Vendor, credentialName, region string) (*ec2.Client, error) {
	provider := credentials.NewProvider(vendor, credentialName)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(provider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return ec2.NewFromConfig(cfg), nil
}

// ListInstances issues a single DescribeInstances call and flattens the
// reservations into display rows. No pagination: one page is what the
// viewer shows.
func ListInstances(ctx context.Context, client DescribeInstancesAPI, region string) ([]Instance, error) {
	out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe instances in %s failed: %w", region, err)
	}

	var instances []Instance
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			instances = append(instances, flatten(inst))
		}
	}
	return instances, nil
}

func flatten(inst ec2types.Instance) Instance {
	row := Instance{
		Name:       "N/A",
		InstanceID: aws.ToString(inst.InstanceId),
		Type:       string(inst.InstanceType),
	}
	if inst.State != nil {
		row.State = string(inst.State.Name)
	}
	for _, tag := range inst.Tags {
		if aws.ToString(tag.Key) == "Name" {
			row.Name = aws.ToString(tag.Value)
			break
		}
	}
	return row
}
