package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	SendOTPEmailFunc func(ctx context.Context, data OTPEmailData) error
	Calls            int
}

func (m *MockProvider) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	m.Calls++
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(ctx, data)
	}
	return nil
}

func (m *MockProvider) SendWelcomeEmail(ctx context.Context, email, name string) error {
	m.Calls++
	return nil
}

func fastRetries(svc *MultiProviderEmailService) *MultiProviderEmailService {
	svc.retryDelays = []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	return svc
}

func TestSendRetriesUntilSuccess(t *testing.T) {
	provider := &MockProvider{}
	provider.SendOTPEmailFunc = func(ctx context.Context, data OTPEmailData) error {
		if provider.Calls < 3 {
			return errors.New("transient failure")
		}
		return nil
	}
	svc := fastRetries(NewMultiProviderEmailService([]EmailProvider{provider}))

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, 3, provider.Calls)
}

func TestSendFailsAfterThreeRetries(t *testing.T) {
	provider := &MockProvider{
		SendOTPEmailFunc: func(ctx context.Context, data OTPEmailData) error {
			return errors.New("hard failure")
		},
	}
	svc := fastRetries(NewMultiProviderEmailService([]EmailProvider{provider}))

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.Error(t, err)
	// Initial attempt plus three retries.
	assert.Equal(t, 4, provider.Calls)
}

func TestSendFallsBackToSecondProvider(t *testing.T) {
	primary := &MockProvider{
		SendOTPEmailFunc: func(ctx context.Context, data OTPEmailData) error {
			return errors.New("primary down")
		},
	}
	fallback := &MockProvider{}
	svc := fastRetries(NewMultiProviderEmailService([]EmailProvider{primary, fallback}))

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.Calls)
	assert.Equal(t, 1, fallback.Calls)
}

func TestSendWithNoProviders(t *testing.T) {
	svc := NewMultiProviderEmailService(nil)

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.Error(t, err)
}

func TestSendHonorsContextCancellation(t *testing.T) {
	provider := &MockProvider{
		SendOTPEmailFunc: func(ctx context.Context, data OTPEmailData) error {
			return errors.New("failure")
		},
	}
	svc := NewMultiProviderEmailService([]EmailProvider{provider})
	svc.retryDelays = []time.Duration{time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.SendOTPEmail(ctx, OTPEmailData{Email: "a@b.c"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, provider.Calls)
}
