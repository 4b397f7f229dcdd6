package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskforge/taskforge/config"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioClient is a minimal client for the Twilio Messages and Calls REST
// endpoints.
type TwilioClient struct {
	cfg        config.TwilioConfig
	httpClient *http.Client
}

func NewTwilioClient(cfg config.TwilioConfig) *TwilioClient {
	return &TwilioClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{
		"To":   {to},
		"From": {c.cfg.PhoneNumber},
		"Body": {body},
	}
	return c.post(ctx, "Messages.json", form)
}

func (c *TwilioClient) Call(ctx context.Context, to, twiml string) error {
	form := url.Values{
		"To":    {to},
		"From":  {c.cfg.PhoneNumber},
		"Twiml": {twiml},
	}
	return c.post(ctx, "Calls.json", form)
}

func (c *TwilioClient) post(ctx context.Context, resource string, form url.Values) error {
	if c.cfg.AccountSID == "" || c.cfg.AuthToken == "" || c.cfg.PhoneNumber == "" {
		return errors.New("twilio not configured")
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/%s", twilioAPIBase, c.cfg.AccountSID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio request failed with status %d: %s", resp.StatusCode, body)
	}
	return nil
}
