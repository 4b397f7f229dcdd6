// Package notify delivers verification codes and password-reset links through
// the external channels: SMTP email, Twilio SMS and Twilio voice calls.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/service"
	"github.com/taskforge/taskforge/config"
)

type Service struct {
	mailer *Mailer
	twilio *TwilioClient
}

func New(cfg *config.Config) *Service {
	return &Service{
		mailer: NewMailer(cfg.SMTP),
		twilio: NewTwilioClient(cfg.Twilio),
	}
}

func (s *Service) SendVerificationCode(ctx context.Context, method service.Method, user *entity.User, code int64) error {
	switch method {
	case service.MethodEmail:
		return s.mailer.Send(user.Email, "Verification Code", verificationEmailBody(code))
	case service.MethodSMS:
		body := fmt.Sprintf("Your verification code is %d. Valid for 5 mins.", code)
		return s.twilio.SendSMS(ctx, user.PhoneNumber, body)
	case service.MethodPhone:
		return s.twilio.Call(ctx, user.PhoneNumber, voiceCodeTwiML(code))
	default:
		return fmt.Errorf("unsupported verification method %q", method)
	}
}

func (s *Service) SendPasswordResetEmail(_ context.Context, email, resetURL string) error {
	body := fmt.Sprintf(
		"Your password reset token is :- \n\n %s \n\nIf you have not requested this email then, please ignore it.",
		resetURL,
	)
	return s.mailer.Send(email, "Password Recovery", "<pre>"+body+"</pre>")
}

func verificationEmailBody(code int64) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:500px;margin:40px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
    <div style="background:#4f46e5;color:#ffffff;text-align:center;padding:20px;font-size:22px;font-weight:bold;">
      Verify Your Email
    </div>
    <div style="padding:30px;color:#333333;text-align:center;">
      <p>Hello</p>
      <p>Your verification code is:</p>
      <div style="font-size:32px;font-weight:bold;letter-spacing:6px;color:#4f46e5;margin:20px 0;">%d</div>
      <p style="font-size:14px;color:#666666;">
        This code is valid for <strong>5 minutes</strong>.<br />
        Do not share this code with anyone.
      </p>
    </div>
  </div>
</body>
</html>`, code)
}

// voiceCodeTwiML spells the code out digit by digit and repeats it once.
func voiceCodeTwiML(code int64) string {
	spaced := strings.Join(strings.Split(strconv.FormatInt(code, 10), ""), " ")
	return fmt.Sprintf(
		"<Response><Say>Your verification code is %s. I repeat %s. Valid for 5 mins.</Say></Response>",
		spaced, spaced,
	)
}
