package services

import (
	"fmt"
	"log"
	"time"

	"teknikservis-backend/config"
	"teknikservis-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// StatusSMSSender pushes a status message to a customer phone. Failures are
// reported, never raised: SMS is fire-and-forget.
type StatusSMSSender interface {
	SendStatusSMS(phone, customerName, deviceType, status string) (sent bool, detail string)
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSService sends repair status updates over Twilio.
type SMSService struct {
	api  messageCreator
	from string
}

func NewSMSService(cfg *config.Config) *SMSService {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		log.Println("Twilio credentials not configured, SMS disabled")
		return &SMSService{from: cfg.TwilioPhoneNumber}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	client.SetTimeout(10 * time.Second)

	return &SMSService{
		api:  client.Api,
		from: cfg.TwilioPhoneNumber,
	}
}

var statusMessages = map[string]string{
	models.StatusPending:    "Sayın %s, %s cihazınız için servis kaydınız alınmıştır.",
	models.StatusApproved:   "Sayın %s, %s cihazınız için servis talebiniz onaylanmıştır.",
	models.StatusInProgress: "Sayın %s, %s cihazınızın onarımına başlanmıştır.",
	models.StatusCompleted:  "Sayın %s, %s cihazınızın onarımı tamamlanmıştır. Cihazınızı teslim alabilirsiniz.",
	models.StatusCancelled:  "Sayın %s, %s cihazınız için servis kaydınız iptal edilmiştir.",
	models.StatusRejected:   "Sayın %s, %s cihazınız için servis talebiniz reddedilmiştir.",
}

func (s *SMSService) SendStatusSMS(phone, customerName, deviceType, status string) (bool, string) {
	if phone == "" {
		return false, "customer has no phone number"
	}
	if s.api == nil || s.from == "" {
		return false, "SMS sender not configured"
	}

	template, ok := statusMessages[status]
	if !ok {
		return false, fmt.Sprintf("no SMS template for status %q", status)
	}
	message := fmt.Sprintf(template, customerName, deviceType)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", phone, err)
		return false, err.Error()
	}

	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", phone, *resp.Sid)
		return true, *resp.Sid
	}
	log.Printf("SMS sent to %s, but no SID returned", phone)
	return true, ""
}
