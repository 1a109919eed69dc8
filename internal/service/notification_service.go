package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/gateway"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
)

// NotificationService composes and sends the client/admin email pair around
// each shipment lifecycle event. Every send is best-effort: a failure is
// logged and absorbed, never surfaced to the lifecycle operation.
type NotificationService struct {
	users           repository.UserStore
	mailer          gateway.MailSender
	trackingBaseURL string
	adminPanelURL   string
}

func NewNotificationService(users repository.UserStore, mailer gateway.MailSender, trackingBaseURL, adminPanelURL string) *NotificationService {
	return &NotificationService{
		users:           users,
		mailer:          mailer,
		trackingBaseURL: trackingBaseURL,
		adminPanelURL:   adminPanelURL,
	}
}

func (s *NotificationService) NotifyShipmentCreated(ctx context.Context, shipment *domain.Shipment, actor *domain.Caller) {
	subject := fmt.Sprintf("New Shipment Created: #%s", shipment.TrackingNumber)
	clientBody := fmt.Sprintf("A new shipment has been created for you with the tracking number %s.", shipment.TrackingNumber)
	adminBody := "A new shipment has been created in the system"

	s.sendClientNotification(ctx, shipment, subject, clientBody)
	s.sendAdminNotification(ctx, shipment, subject, adminBody, actor)
}

func (s *NotificationService) NotifyShipmentUpdated(ctx context.Context, shipment *domain.Shipment, actor *domain.Caller) {
	subject := fmt.Sprintf("Shipment Updated: #%s", shipment.TrackingNumber)
	clientBody := fmt.Sprintf("Details for your shipment with tracking number %s have been updated.", shipment.TrackingNumber)
	adminBody := fmt.Sprintf("Shipment details for #%s have been updated in the system", shipment.TrackingNumber)

	s.sendClientNotification(ctx, shipment, subject, clientBody)
	s.sendAdminNotification(ctx, shipment, subject, adminBody, actor)
}

func (s *NotificationService) NotifyStatusChanged(ctx context.Context, shipment *domain.Shipment, actor *domain.Caller) {
	clientSubject := fmt.Sprintf("Status Update for Shipment: #%s", shipment.TrackingNumber)
	clientBody := fmt.Sprintf("The status of your shipment has been changed to <strong>%s</strong>.", shipment.Status)
	adminSubject := fmt.Sprintf("Status Changed for Shipment: #%s to %s", shipment.TrackingNumber, shipment.Status)
	adminBody := fmt.Sprintf("The status of shipment #%s has been updated to <strong>%s</strong>", shipment.TrackingNumber, shipment.Status)

	s.sendClientNotification(ctx, shipment, clientSubject, clientBody)
	s.sendAdminNotification(ctx, shipment, adminSubject, adminBody, actor)
}

func (s *NotificationService) NotifyReplyPosted(ctx context.Context, shipment *domain.Shipment, reply domain.Reply, actor *domain.Caller) {
	clientSubject := fmt.Sprintf("New Reply for Shipment: #%s", shipment.TrackingNumber)
	clientBody := fmt.Sprintf(
		"A new reply has been added to your shipment with tracking number %s.<br /><strong>The message is:</strong> %q.",
		shipment.TrackingNumber, reply.Message,
	)

	author := "an unknown user"
	if actor != nil {
		author = actor.Email
	}
	adminSubject := fmt.Sprintf("New Reply on Shipment: #%s", shipment.TrackingNumber)
	adminBody := fmt.Sprintf(
		"A new reply has been posted on shipment #%s by %s.<br /><strong>Message:</strong> %q",
		shipment.TrackingNumber, author, reply.Message,
	)

	s.sendClientNotification(ctx, shipment, clientSubject, clientBody)
	s.sendAdminNotification(ctx, shipment, adminSubject, adminBody, actor)
}

// sendClientNotification mails the shipment's registered sender, if there is
// one and their email resolves. Anything else is a logged skip.
func (s *NotificationService) sendClientNotification(ctx context.Context, shipment *domain.Shipment, subject, body string) {
	if shipment.SenderID == nil {
		log.Printf("Shipment %s has no sender. Skipping client email notification.", shipment.TrackingNumber)
		return
	}

	sender, err := s.users.GetByID(ctx, *shipment.SenderID)
	if err != nil || sender.Email == "" {
		log.Printf("Sender not found or email is missing for shipment %s. Skipping client email notification.", shipment.TrackingNumber)
		return
	}

	htmlBody := s.clientEmailHTML(shipment, subject, body)
	if err := s.mailer.SendMail(ctx, []string{sender.Email}, subject, htmlBody); err != nil {
		log.Printf("Failed to send client email notification: %v", err)
		return
	}
	log.Printf("Client email sent to %s successfully.", sender.Email)
}

// sendAdminNotification mails every admin and employee, deduplicated, in a
// single send call.
func (s *NotificationService) sendAdminNotification(ctx context.Context, shipment *domain.Shipment, subject, adminBody string, actor *domain.Caller) {
	recipients, err := s.users.ListByRoles(ctx, domain.RoleAdmin, domain.RoleEmployee)
	if err != nil {
		log.Printf("Failed to resolve admin notification recipients: %v", err)
		return
	}

	emails := dedupeEmails(recipients)
	if len(emails) == 0 {
		log.Printf("No admin or employee users found to send notification.")
		return
	}

	senderDetails := ""
	if shipment.SenderID != nil {
		if sender, err := s.users.GetByID(ctx, *shipment.SenderID); err == nil {
			name := sender.FullName
			if name == "" {
				name = sender.Email
			}
			senderDetails = fmt.Sprintf(" by user %s", name)
		}
	}

	htmlBody := s.adminEmailHTML(shipment, subject, adminBody+senderDetails, actor)
	if err := s.mailer.SendMail(ctx, emails, "Admin Notification: "+subject, htmlBody); err != nil {
		log.Printf("Failed to send admin/employee emails: %v", err)
		return
	}
	log.Printf("Admin/Employee emails sent to: %s", strings.Join(emails, ", "))
}

func dedupeEmails(users []*domain.User) []string {
	seen := make(map[string]bool)
	var emails []string
	for _, user := range users {
		if user.Email == "" || seen[user.Email] {
			continue
		}
		seen[user.Email] = true
		emails = append(emails, user.Email)
	}
	return emails
}

func (s *NotificationService) clientEmailHTML(shipment *domain.Shipment, subject, body string) string {
	greeting := shipment.SenderName
	if greeting == "" {
		greeting = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<table role="presentation" align="center" width="100%%" style="max-width:600px;background:#ffffff;border-radius:8px;margin:20px auto;">`)
	fmt.Fprintf(&b, `<tr><td style="background:#007bff;color:#ffffff;padding:25px 20px;text-align:center;"><h2 style="margin:0;">%s</h2></td></tr>`, subject)
	fmt.Fprintf(&b, `<tr><td style="padding:20px 30px;">`)
	fmt.Fprintf(&b, `<p>Hello %s,</p><p>%s</p>`, greeting, body)
	b.WriteString(`<table width="100%" style="font-size:15px;">`)
	writeDetailRow(&b, "Tracking Number", shipment.TrackingNumber)
	writeDetailRow(&b, "Current Status", shipment.Status)
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<p style="text-align:center;"><a href="%s/app/trackshipment" style="display:inline-block;background:#007bff;color:#ffffff;text-decoration:none;padding:12px 25px;border-radius:5px;font-weight:bold;">Track Your Shipment</a></p>`, s.trackingBaseURL)
	b.WriteString(`<p>Thank you for using our service.</p><p style="font-weight:bold;">The Cargo Realm Team</p>`)
	b.WriteString(`</td></tr>`)
	writeEmailFooter(&b, "This is an automated email. Please do not reply to this email.")
	b.WriteString(`</table>`)
	return b.String()
}

func (s *NotificationService) adminEmailHTML(shipment *domain.Shipment, subject, adminBody string, actor *domain.Caller) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<table role="presentation" align="center" width="100%%" style="max-width:600px;background:#ffffff;border-radius:8px;margin:20px auto;">`)
	fmt.Fprintf(&b, `<tr><td style="background:#007bff;color:#ffffff;padding:25px 20px;text-align:center;"><h2 style="margin:0;">Admin Alert: %s</h2></td></tr>`, subject)
	fmt.Fprintf(&b, `<tr><td style="padding:20px 30px;"><p>%s.</p>`, adminBody)
	b.WriteString(`<table width="100%" style="font-size:15px;">`)
	writeDetailRow(&b, "Tracking Number", shipment.TrackingNumber)
	writeDetailRow(&b, "Current Status", shipment.Status)
	writeDetailRow(&b, "Sender Name", orNA(shipment.SenderName))
	writeDetailRow(&b, "Sender Email", orNA(shipment.SenderEmail))
	writeDetailRow(&b, "Receiver Name", orNA(shipment.RecipientName))
	writeDetailRow(&b, "Receiver Email", orNA(shipment.RecipientEmail))
	writeDetailRow(&b, "Origin", orNA(shipment.Origin))
	writeDetailRow(&b, "Destination", orNA(shipment.Destination))
	if actor != nil {
		writeDetailRow(&b, "Action Performed By", fmt.Sprintf("%s (Role: %s)", actor.Email, actor.Role))
	}
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<p style="text-align:center;"><a href="%s" style="display:inline-block;background:#007bff;color:#ffffff;text-decoration:none;padding:12px 25px;border-radius:5px;font-weight:bold;">Log in to Admin Panel</a></p>`, s.adminPanelURL)
	b.WriteString(`</td></tr>`)
	writeEmailFooter(&b, "This is an automated alert. Please do not reply to this email.")
	b.WriteString(`</table>`)
	return b.String()
}

func writeDetailRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b,
		`<tr><td style="padding:8px 0;border-bottom:1px solid #eeeeee;width:40%%;"><strong style="color:#555555;">%s:</strong></td><td style="padding:8px 0;border-bottom:1px solid #eeeeee;width:60%%;">%s</td></tr>`,
		label, value,
	)
}

func writeEmailFooter(b *strings.Builder, notice string) {
	fmt.Fprintf(b,
		`<tr><td style="padding:20px 30px;text-align:center;font-size:12px;color:#777777;"><p style="margin:0;">%s</p><p style="margin:5px 0 0;">&copy; %d Tofar Logistics Agency. All rights reserved.</p></td></tr>`,
		notice, time.Now().Year(),
	)
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
