package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/models"
)

const subject = "🐦 Welcome Winged-One to Ventara!"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: black; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
      .button { display: inline-block; padding: 12px 30px; background: #667eea; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
      .payment-info { background: white; padding: 20px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #667eea; }
      .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>{{.Subject}}</h1>
      </div>
      <div class="content">
        <h2>Hi {{.FirstName}}! 🎉</h2>

        <p>Thank you for registering for <strong>Ventara,</strong> the Mettaway Voyage <strong>#7</strong>! We're so excited to have you join us.</p>
{{if .Family}}
        <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: black; padding: 20px; border-radius: 10px; margin: 20px 0; text-align: center;">
          <h3 style="margin: 0 0 10px 0;">🐦 Your Bird Family</h3>
          <p style="font-size: 18px; font-weight: bold; margin: 0;">You are part of <a href="{{.Family.Link}}" style="color: black; text-decoration: underline; font-weight: bold;"><strong>{{.Family.Collective}}</strong>!</a></p>
          <p style="margin: 10px 0 0 0; font-style: italic;">The Metta-Oracle has revealed your true nature. Embrace your flock! 🌟</p>
        </div>
{{end}}
        <h3>Next Step: Payment</h3>
        <p>With the completion of this form, your nest-spot is temporarily reserved. Only once you've paid the travel fee, your spot will be unconditionally reserved for you.</p>

        <p>Money transfers can be made in the following ways:</p>
{{with .Payment}}
        <div class="payment-info">
          <h4>💳 Revolut</h4>
          <p>Send directly to <strong>{{.RevolutName}}</strong></p>
          <p>Phone: <strong>{{.Phone}}</strong></p>
        </div>

        <div class="payment-info">
          <h4>🏦 Bank Transfer</h4>
          <p><strong>IBAN:</strong> {{.IBAN}}</p>
          <p><strong>Account Holder:</strong> {{.AccountHolder}}</p>
          <p><strong>Address:</strong> {{.Address}}</p>
        </div>

        <div class="payment-info">
          <h4>📱 Twint</h4>
          <p>
            <a href="{{.TwintLink}}" class="button">Pay with Twint</a>
          </p>
        </div>
{{end}}
        <h3>What's Next?</h3>
        <ul>
          <li>Complete your payment</li>
          <li>Keep an eye on your email for updates</li>
        </ul>

        <p>If you have any questions or if the financial contribution prohibits you from participating, please reach out to us at <a href="mailto:{{.Payment.ContactEmail}}" style="color: #667eea; text-decoration: underline;">{{.Payment.ContactEmail}}</a> - we are your friends!</p>

        <p>From our nest to yours, with love and kindness, we'll see you soon🌟</p>

        <strong>The Flocks of Ventara</strong>

        <div class="footer">
          <p>This email was sent to {{.Email}}</p>
          <p>Mettaway 2025</p>
        </div>
      </div>
    </div>
  </body>
</html>
`))

type familyView struct {
	Link       string
	Collective string
}

type confirmationView struct {
	Subject   string
	FirstName string
	Email     string
	Family    *familyView
	Payment   config.PaymentConfig
}

// renderConfirmation renders the welcome email body. The bird family block
// only appears for known categories.
func renderConfirmation(req models.ConfirmationRequest, baseURL string, payment config.PaymentConfig) (string, error) {
	view := confirmationView{
		Subject:   subject,
		FirstName: req.FirstName,
		Email:     req.Email,
		Payment:   payment,
	}

	category := req.ResolvedCategory()
	video, hasVideo := models.BirdVideo(category)
	collective, hasCollective := models.BirdCollective(category)
	if hasVideo && hasCollective {
		view.Family = &familyView{
			Link:       strings.TrimRight(baseURL, "/") + "/bird-families/" + url.PathEscape(video),
			Collective: collective,
		}
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}
