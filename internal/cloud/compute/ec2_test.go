package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type fakeEC2 struct {
	out *ec2.DescribeInstancesOutput
	err error
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return f.out, f.err
}

// TestListInstancesFlattensReservations verifies rows come out of nested
// reservations with tags, state, and type mapped.
func TestListInstancesFlattensReservations(t *testing.T) {
	out := &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{
			{
				Instances: []ec2types.Instance{
					{
						InstanceId:   aws.String("i-0aaa"),
						InstanceType: ec2types.InstanceTypeT3Micro,
						State:        &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
						Tags: []ec2types.Tag{
							{Key: aws.String("env"), Value: aws.String("prod")},
							{Key: aws.String("Name"), Value: aws.String("web-1")},
						},
					},
				},
			},
			{
				Instances: []ec2types.Instance{
					{
						InstanceId: aws.String("i-0bbb"),
						State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
					},
				},
			},
		},
	}

	got, err := ListInstances(context.Background(), &fakeEC2{out: out}, "us-east-1")
	if err != nil {
		t.Fatalf("ListInstances() error = %v, want nil", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListInstances() returned %d rows, want 2", len(got))
	}

	if got[0].Name != "web-1" || got[0].InstanceID != "i-0aaa" {
		t.Errorf("row 0 = %+v, want name web-1 / id i-0aaa", got[0])
	}
	if got[0].State != "running" || got[0].Type != "t3.micro" {
		t.Errorf("row 0 state/type = %q/%q, want running/t3.micro", got[0].State, got[0].Type)
	}

	// No Name tag falls back to N/A, matching the table's placeholder.
	if got[1].Name != "N/A" {
		t.Errorf("row 1 name = %q, want N/A for untagged instance", got[1].Name)
	}
	if got[1].State != "stopped" {
		t.Errorf("row 1 state = %q, want stopped", got[1].State)
	}
}

// TestListInstancesEmpty returns no rows without error.
func TestListInstancesEmpty(t *testing.T) {
	got, err := ListInstances(context.Background(), &fakeEC2{out: &ec2.DescribeInstancesOutput{}}, "us-east-1")
	if err != nil {
		t.Fatalf("ListInstances() error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("ListInstances() returned %d rows, want 0", len(got))
	}
}

// TestListInstancesError names the region in the failure.
func TestListInstancesError(t *testing.T) {
	_, err := ListInstances(context.Background(), &fakeEC2{err: errors.New("UnauthorizedOperation")}, "eu-west-1")
	if err == nil {
		t.Fatal("ListInstances() should propagate the API error")
	}
}
