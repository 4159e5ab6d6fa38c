package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

type ResendService struct {
	client *resend.Client
	from   string
}

func NewResendService(apiKey, fromEmail string) *ResendService {
	return &ResendService{
		client: resend.NewClient(apiKey),
		from:   fromEmail,
	}
}

func (rs *ResendService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Your CS Rippers Verification Code"

	html := fmt.Sprintf(`
	<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 600px; margin: 0 auto; background-color: #0f172a; color: #e2e8f0; border-radius: 10px; padding: 30px;">
		<div style="font-size: 28px; font-weight: bold; color: #22d3ee; text-align: center; margin-bottom: 20px;">CS RIPPERS</div>
		<p>Hey <strong>%s</strong>,</p>
		<p>Use this code to verify your identity:</p>
		<div style="background-color: #1e293b; border: 2px dashed #334155; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
			<span style="font-size: 32px; font-weight: bold; color: #22d3ee; letter-spacing: 5px; font-family: 'Courier New', monospace;">%s</span>
		</div>
		<p>The code is valid for <strong>%d minutes</strong>. Never share it with anyone. If you did not request it, ignore this email.</p>
	</div>
	`, data.Name, data.OTPCode, data.ExpiresIn)

	text := fmt.Sprintf(`CS Rippers - Verification Code

Hey %s,

Your verification code: %s

The code is valid for %d minutes. Never share it with anyone.

--
CS Rippers Team
`, data.Name, data.OTPCode, data.ExpiresIn)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CS Rippers <%s>", rs.from),
		To:      []string{data.Email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	res, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("ResendService: Error sending OTP email to %s: %v", data.Email, err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	log.Printf("ResendService: OTP email sent successfully to %s. Message ID: %s", data.Email, res.Id)
	return nil
}

func (rs *ResendService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject := "Welcome to CS Rippers!"

	html := fmt.Sprintf(`
	<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 600px; margin: 0 auto; background-color: #0f172a; color: #e2e8f0; border-radius: 10px; padding: 30px;">
		<div style="font-size: 28px; font-weight: bold; color: #22d3ee; text-align: center; margin-bottom: 20px;">CS RIPPERS</div>
		<p>Hey <strong>%s</strong>,</p>
		<p>Your account is verified. Register for events and climb the leaderboard.</p>
		<p>See you on the grid!</p>
	</div>
	`, name)

	text := fmt.Sprintf(`CS Rippers - Welcome!

Hey %s,

Your account is verified. Register for events and climb the leaderboard.

See you on the grid!

--
CS Rippers Team
`, name)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CS Rippers <%s>", rs.from),
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	res, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("ResendService: Error sending welcome email to %s: %v", email, err)
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	log.Printf("ResendService: Welcome email sent successfully to %s. Message ID: %s", email, res.Id)
	return nil
}
