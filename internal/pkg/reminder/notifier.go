package reminder

import (
	"fmt"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/internal/pkg/mail"
	"gorm.io/gorm"
)

// mailNotifier sends the reminder by email and records a notification row.
type mailNotifier struct {
	db *gorm.DB
}

// NewMailNotifier creates the production notifier backed by SMTP and the
// notifications table.
func NewMailNotifier(db *gorm.DB) Notifier {
	return &mailNotifier{db: db}
}

func (n *mailNotifier) NotifyExpiry(member *models.Member, daysLeft int) error {
	subject := fmt.Sprintf("Your membership expires in %d day(s)", daysLeft)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>your membership ends on %s. Renew in time to keep your chapter seat.</p>",
		member.Name, member.SubscriptionEndDate.Format("02.01.2006"),
	)
	if err := mail.SendMail(member.Email, subject, body); err != nil {
		return err
	}

	return models.CreateNotification(n.db, member.ID, "subscription_reminder", subject, member.ID)
}
