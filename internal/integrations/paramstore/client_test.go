package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut  *ssm.GetParameterOutput
	getErr  error
	gotName string
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if in.Name != nil {
		f.gotName = *in.Name
	}
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func valueOutput(v string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: strPtr(v)}}
}

func TestGetParameter_HappyPath_UsesPrefix(t *testing.T) {
	api := &fakeAPI{getOut: valueOutput("kb text")}
	client, err := New(api, "/hub-assistant/")
	require.NoError(t, err)

	v, err := client.GetParameter(context.Background(), "knowledge_base")
	require.NoError(t, err)
	require.Equal(t, "kb text", v)
	require.Equal(t, "/hub-assistant/knowledge_base", api.gotName)
}

func TestGetParameter_AbsoluteNameSkipsPrefix(t *testing.T) {
	api := &fakeAPI{getOut: valueOutput("v")}
	client, err := New(api, "/hub-assistant")
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "/shared/GEMINI_API_KEY")
	require.NoError(t, err)
	require.Equal(t, "/shared/GEMINI_API_KEY", api.gotName)
}

func TestGetParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api, "")
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestGetParameter_NotFound(t *testing.T) {
	api := &fakeAPI{getErr: &types.ParameterNotFound{}}
	client, err := New(api, "")
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api, "")
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	client, err := New(&fakeAPI{}, "")
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil, "/x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestLookupSecret(t *testing.T) {
	client, err := New(&fakeAPI{getOut: valueOutput(" sk-123 \n")}, "/hub-assistant")
	require.NoError(t, err)
	v, ok, err := client.LookupSecret(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "sk-123", v)

	client, err = New(&fakeAPI{getErr: &types.ParameterNotFound{}}, "/hub-assistant")
	require.NoError(t, err)
	_, ok, err = client.LookupSecret(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	require.False(t, ok)

	client, err = New(&fakeAPI{getErr: errors.New("throttled")}, "/hub-assistant")
	require.NoError(t, err)
	_, ok, err = client.LookupSecret(context.Background(), "OPENAI_API_KEY")
	require.Error(t, err)
	require.False(t, ok)
}
