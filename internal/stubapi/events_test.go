package stubapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"corp-onboarding/internal/common/aws"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	mu     sync.Mutex
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
}

func TestHandleCreateProfile_PublishesEvent(t *testing.T) {
	api := &fakeSNS{}
	router, h := newTestRouter(t, NewMemoryStore())
	h.WithEvents(NewSNSEvents(aws.NewSNSClientFromAPI(api, "arn:topic")))

	rec := doRequest(t, router, http.MethodPost, "/profile-details", validProfile())
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, eventProfileCreated, awssdk.ToString(in.Subject))

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(awssdk.ToString(in.Message)), &event))
	assert.Equal(t, "profile-1", event["id"])
	assert.Equal(t, "826417395", event["corporationNumber"])
	assert.NotContains(t, event, "phone")
	assert.NotContains(t, event, "firstName")
}

func TestHandleCreateProfile_EventFailureDoesNotFailRequest(t *testing.T) {
	api := &fakeSNS{err: errors.New("throttled")}
	store := NewMemoryStore()
	router, h := newTestRouter(t, store)
	h.WithEvents(NewSNSEvents(aws.NewSNSClientFromAPI(api, "arn:topic")))

	rec := doRequest(t, router, http.MethodPost, "/profile-details", validProfile())
	assert.Equal(t, http.StatusOK, rec.Code)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandleCreateProfile_RejectionPublishesNothing(t *testing.T) {
	api := &fakeSNS{}
	router, h := newTestRouter(t, NewMemoryStore())
	h.WithEvents(NewSNSEvents(aws.NewSNSClientFromAPI(api, "arn:topic")))

	v := validProfile()
	v.CorporationNumber = "000000000"
	rec := doRequest(t, router, http.MethodPost, "/profile-details", v)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.inputs)
}
