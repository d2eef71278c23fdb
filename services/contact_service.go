package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-faster/errors"

	"github.com/Badalsingh25/CraftConnect/utils"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService forwards contact form messages to the site admin
type ContactService struct {
	mailer utils.Mailer
	admin  string
}

func NewContactService(mailer utils.Mailer, adminEmail string) *ContactService {
	return &ContactService{mailer: mailer, admin: adminEmail}
}

// Send validates msg and mails it to the admin. A delivery failure is
// returned as ErrContactNotDelivered so the sender can try again.
func (s *ContactService) Send(msg ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	fields := []struct {
		label    string
		value    string
		min, max int
	}{
		{"Name", msg.Name, 2, 100},
		{"Subject", msg.Subject, 3, 200},
		{"Message", msg.Message, 10, 2000},
	}
	for _, f := range fields {
		if err := utils.ValidateStringLength(f.value, f.min, f.max); err != nil {
			return utils.BadRequestError(f.label+" "+err.Error(), ErrInvalidRequest)
		}
	}

	if s.admin == "" {
		utils.LogError("Contact message from %q dropped: ADMIN_EMAIL not set", msg.Name)
		return errors.Wrap(ErrContactNotDelivered, "no admin address")
	}

	subject := fmt.Sprintf("[%s Public Contact] %s", utils.AppName, msg.Subject)
	body := fmt.Sprintf(`<h2>New Public Contact Message</h2>
<p><strong>From:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<hr>
<p>%s</p>`,
		html.EscapeString(msg.Name),
		html.EscapeString(orDefault(msg.Email, "Not provided")),
		html.EscapeString(msg.Subject),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)

	if err := s.mailer.Send(s.admin, subject, body); err != nil {
		utils.LogError("Contact message from %q failed: %v", msg.Name, err)
		return errors.Wrap(ErrContactNotDelivered, "send contact mail")
	}
	utils.LogInfo("Contact message from %q forwarded to admin", msg.Name)
	return nil
}
