package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendsCollectionAttribute(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://sqs.local/q", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), NewEvent("posts", 3, domain.Post{PostID: 3})); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["collection"]
	if !ok || aws.ToString(attr.StringValue) != "posts" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("collection attribute missing or wrong: %#v", attr)
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"record_id":3`) {
		t.Fatalf("MessageBody missing record_id: %s", body)
	}
}

func TestSQSPublisherWrapsSendError(t *testing.T) {
	boom := errors.New("boom")
	pub := &sqsPublisher{id: "queue", client: &fakeSQSClient{err: boom}, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), Event{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSNSPublisherPublishSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:::topic", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), NewEvent("users", 1, domain.User{UserID: 1, Name: "User 1"})); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["collection"]
	if !ok || aws.ToString(attr.StringValue) != "users" {
		t.Fatalf("collection attribute missing or wrong: %#v", attr)
	}
	if msg := aws.ToString(client.input.Message); !strings.Contains(msg, `"name":"User 1"`) {
		t.Fatalf("Message missing record: %s", msg)
	}
}

func TestSNSPublisherPublishError(t *testing.T) {
	pub := &snsPublisher{id: "topic", client: &fakeSNSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestLoadAWSConfigUsesStaticCredentials(t *testing.T) {
	cfg, err := loadAWSConfig(context.Background(), AWSConfig{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Fatalf("region = %s", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Fatalf("AccessKeyID = %s", creds.AccessKeyID)
	}
}
