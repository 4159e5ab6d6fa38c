package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailersend/mailersend-go"
)

type EmailService struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

type OTPEmailData struct {
	Email     string
	Name      string
	OTPCode   string
	ExpiresIn int // in minutes
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	client := mailersend.NewMailersend(apiKey)

	from := mailersend.From{
		Name:  fromName,
		Email: fromEmail,
	}

	return &EmailService{
		client: client,
		from:   from,
	}
}

func (es *EmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Your CS Rippers Verification Code"

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<style>
			body { font-family: 'Segoe UI', Tahoma, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
			.container { background-color: #0f172a; color: #e2e8f0; border-radius: 10px; padding: 30px; }
			.logo { font-size: 28px; font-weight: bold; color: #22d3ee; text-align: center; margin-bottom: 20px; }
			.otp-code { background-color: #1e293b; border: 2px dashed #334155; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0; }
			.otp-number { font-size: 32px; font-weight: bold; color: #22d3ee; letter-spacing: 5px; font-family: 'Courier New', monospace; }
			.footer { text-align: center; margin-top: 30px; color: #64748b; font-size: 14px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="logo">CS RIPPERS</div>
			<p>Hey <strong>%s</strong>,</p>
			<p>Use this code to verify your identity:</p>
			<div class="otp-code"><div class="otp-number">%s</div></div>
			<p>The code is valid for <strong>%d minutes</strong>. Never share it with anyone. If you did not request it, ignore this email.</p>
			<div class="footer"><p>This is an automated message, please do not reply.</p></div>
		</div>
	</body>
	</html>
	`, data.Name, data.OTPCode, data.ExpiresIn)

	text := fmt.Sprintf(`CS Rippers - Verification Code

Hey %s,

Your verification code: %s

The code is valid for %d minutes. Never share it with anyone.
If you did not request it, ignore this email.

--
CS Rippers Team
`, data.Name, data.OTPCode, data.ExpiresIn)

	recipients := []mailersend.Recipient{
		{
			Name:  data.Name,
			Email: data.Email,
		},
	}

	message := es.client.Email.NewMessage()
	message.SetFrom(es.from)
	message.SetRecipients(recipients)
	message.SetSubject(subject)
	message.SetHTML(html)
	message.SetText(text)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := es.client.Email.Send(ctx, message)
	if err != nil {
		log.Printf("Error sending OTP email to %s: %v", data.Email, err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	log.Printf("OTP email sent successfully to %s. Message ID: %s", data.Email, res.Header.Get("X-Message-Id"))
	return nil
}

func (es *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject := "Welcome to CS Rippers!"

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<style>
			body { font-family: 'Segoe UI', Tahoma, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
			.container { background-color: #0f172a; color: #e2e8f0; border-radius: 10px; padding: 30px; }
			.logo { font-size: 28px; font-weight: bold; color: #22d3ee; text-align: center; margin-bottom: 20px; }
			.feature { background-color: #1e293b; padding: 15px; margin: 10px 0; border-radius: 8px; border-left: 4px solid #22d3ee; }
			.footer { text-align: center; margin-top: 30px; color: #64748b; font-size: 14px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="logo">CS RIPPERS</div>
			<p>Hey <strong>%s</strong>,</p>
			<p>Your account is verified. Here is what you can do now:</p>
			<div class="feature"><strong>Hackathons &amp; Events</strong><br>Register for upcoming events straight from the desktop.</div>
			<div class="feature"><strong>Leaderboard</strong><br>Earn points and achievements, climb the standings.</div>
			<p>See you on the grid!</p>
			<div class="footer"><p>This is an automated message, please do not reply.</p></div>
		</div>
	</body>
	</html>
	`, name)

	text := fmt.Sprintf(`CS Rippers - Welcome!

Hey %s,

Your account is verified. Register for events and climb the leaderboard.

See you on the grid!

--
CS Rippers Team
`, name)

	recipients := []mailersend.Recipient{
		{
			Name:  name,
			Email: email,
		},
	}

	message := es.client.Email.NewMessage()
	message.SetFrom(es.from)
	message.SetRecipients(recipients)
	message.SetSubject(subject)
	message.SetHTML(html)
	message.SetText(text)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := es.client.Email.Send(ctx, message)
	if err != nil {
		log.Printf("Error sending welcome email to %s: %v", email, err)
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	log.Printf("Welcome email sent successfully to %s. Message ID: %s", email, res.Header.Get("X-Message-Id"))
	return nil
}
