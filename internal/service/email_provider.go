package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// EmailProvider interface for different email services
type EmailProvider interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
	SendWelcomeEmail(ctx context.Context, email, name string) error
}

// MultiProviderEmailService handles multiple email providers with fallback.
// A send round tries every provider in order; a failed round is retried up
// to three times with exponential backoff before the whole send fails.
type MultiProviderEmailService struct {
	providers   []EmailProvider
	retryDelays []time.Duration
}

// NewMultiProviderEmailService creates a new multi-provider email service
func NewMultiProviderEmailService(providers []EmailProvider) *MultiProviderEmailService {
	return &MultiProviderEmailService{
		providers:   providers,
		retryDelays: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// SendOTPEmail tries to send OTP email using available providers
func (m *MultiProviderEmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	return m.sendWithRetry(ctx, fmt.Sprintf("OTP email to %s", data.Email), func(p EmailProvider) error {
		return p.SendOTPEmail(ctx, data)
	})
}

// SendWelcomeEmail tries to send welcome email using available providers
func (m *MultiProviderEmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	return m.sendWithRetry(ctx, fmt.Sprintf("welcome email to %s", email), func(p EmailProvider) error {
		return p.SendWelcomeEmail(ctx, email, name)
	})
}

func (m *MultiProviderEmailService) sendWithRetry(ctx context.Context, what string, send func(EmailProvider) error) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email providers configured")
	}

	var lastErr error
	for attempt := 0; attempt <= len(m.retryDelays); attempt++ {
		for i, provider := range m.providers {
			err := send(provider)
			if err == nil {
				if attempt > 0 || i > 0 {
					log.Printf("MultiProviderEmailService: %s sent via provider %d on attempt %d", what, i+1, attempt+1)
				}
				return nil
			}
			log.Printf("MultiProviderEmailService: provider %d failed sending %s: %v", i+1, what, err)
			lastErr = err
		}

		if attempt == len(m.retryDelays) {
			break
		}

		select {
		case <-time.After(m.retryDelays[attempt]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("all email providers failed. Last error: %w", lastErr)
}

// GetProviderCount returns the number of configured providers
func (m *MultiProviderEmailService) GetProviderCount() int {
	return len(m.providers)
}
