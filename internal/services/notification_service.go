package services

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// NotificationService fans out transactional email (SendGrid) and SMS
// (Twilio). Nil clients downgrade to a logged skip so local dev works
// without live credentials.
type NotificationService struct {
	sgClient  *sendgrid.Client
	twClient  *twilio.RestClient
	fromEmail string
	fromPhone string
	orgName   string
	sandbox   bool
}

func NewNotificationService(cfg *config.Config, sgClient *sendgrid.Client, twClient *twilio.RestClient) *NotificationService {
	return &NotificationService{
		sgClient:  sgClient,
		twClient:  twClient,
		fromEmail: cfg.LDFlag_SendgridFromEmail,
		fromPhone: cfg.LDFlag_TwilioFromPhone,
		orgName:   cfg.OrganizationName,
		sandbox:   cfg.LDFlag_SendgridSandboxMode,
	}
}

func (n *NotificationService) SendEmail(toName, toEmail, subject, plainText, html string) error {
	if n.sgClient == nil {
		utils.Logger.Warnf("SendGrid client is nil, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(n.orgName, n.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainText, html)
	if n.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	if _, err := n.sgClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Errorf("Email send failure to %s", toEmail)
		return err
	}
	return nil
}

func (n *NotificationService) SendSMS(toPhone, body string) error {
	if n.twClient == nil {
		utils.Logger.Warnf("Twilio client is nil, skipping SMS to %s", toPhone)
		return nil
	}
	if toPhone == "" {
		utils.Logger.Warn("No phone number on file, skipping SMS")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(n.fromPhone)
	params.SetBody(body)
	if _, err := n.twClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Errorf("SMS send failure to %s", toPhone)
		return err
	}
	return nil
}
