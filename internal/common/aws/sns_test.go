package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSNS struct {
	mock.Mock
}

func (m *MockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func TestNewSNSClient_RequiresTopic(t *testing.T) {
	client, err := NewSNSClient(context.Background(), "ca-central-1", "")
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestSNSClient_PublishJSON(t *testing.T) {
	api := &MockSNS{}
	client := NewSNSClientFromAPI(api, "arn:aws:sns:ca-central-1:000000000000:profiles")

	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		var body map[string]string
		if err := json.Unmarshal([]byte(awssdk.ToString(in.Message)), &body); err != nil {
			return false
		}
		attr, ok := in.MessageAttributes["event_type"]
		return awssdk.ToString(in.TopicArn) == "arn:aws:sns:ca-central-1:000000000000:profiles" &&
			awssdk.ToString(in.Subject) == "profile.created" &&
			body["id"] == "p-1" &&
			ok && awssdk.ToString(attr.StringValue) == "profile.created"
	})).Return(&sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil).Once()

	id, err := client.PublishJSON(context.Background(), "profile.created",
		map[string]string{"id": "p-1"}, map[string]string{"event_type": "profile.created"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	api.AssertExpectations(t)
}

func TestSNSClient_PublishJSON_Errors(t *testing.T) {
	api := &MockSNS{}
	client := NewSNSClientFromAPI(api, "arn:topic")

	_, err := client.PublishJSON(context.Background(), "bad", make(chan int), nil)
	require.Error(t, err)
	api.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

	api.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()
	_, err = client.PublishJSON(context.Background(), "profile.created", map[string]string{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
