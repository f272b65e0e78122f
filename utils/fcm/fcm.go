package fcm

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/events"
)

const (
	userTopicPrefix = "user_"
	roleTopicPrefix = "role_"
)

var fcmClient *messaging.Client

// Init sets up the Firebase Admin SDK. Call once from main; the API keeps
// working without push notifications if this is skipped (tests, local dev).
func Init(ctx context.Context) error {
	projectID := os.Getenv("FCM_PROJECT_ID")
	if projectID == "" {
		return fmt.Errorf("FCM_PROJECT_ID environment variable is not set")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Firebase Messaging client: %w", err)
	}

	fcmClient = client
	log.Println("✅ Firebase Admin SDK initialized")
	return nil
}

func userTopic(userID uint) string {
	return userTopicPrefix + strconv.FormatUint(uint64(userID), 10)
}

func roleTopic(role models.Role) string {
	return roleTopicPrefix + string(role)
}

func sendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	if fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: "default_channel"},
		},
	}

	_, err := fcmClient.Send(ctx, msg)
	return err
}

// StartNotifierConsumer drains the letter event bus and fans workflow
// notifications out to the mobile app. Run it as a goroutine from main.
func StartNotifierConsumer(ctx context.Context) {
	log.Println("✅ FCM notifier consumer started")

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events.LetterEventBus:
			go func(event events.LetterEvent) {
				sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				data := map[string]string{
					"letter_id": strconv.FormatUint(uint64(event.LetterID), 10),
					"reference": event.ReferenceNumber,
					"status":    event.Status,
					"type":      string(event.Type),
				}

				var topic, title, body string

				switch event.Type {
				case events.DispositionAssigned:
					topic = userTopic(event.TargetUserID)
					title = "New Disposition"
					body = fmt.Sprintf("Letter %s has been routed to you.", event.ReferenceNumber)

				case events.ApprovalRequested:
					topic = roleTopic(models.RoleLeadership)
					title = "Approval Required"
					body = fmt.Sprintf("Letter %s is waiting for your sign-off.", event.ReferenceNumber)

				case events.ApprovalDecided:
					topic = userTopic(event.TargetUserID)
					title = "Approval Decision"
					body = fmt.Sprintf("Letter %s is now %s.", event.ReferenceNumber, event.Status)

				case events.LetterSent:
					topic = userTopic(event.TargetUserID)
					title = "Letter Sent"
					body = fmt.Sprintf("Letter %s has been sent.", event.ReferenceNumber)

				default:
					return
				}

				if err := sendToTopic(sendCtx, topic, title, body, data); err != nil {
					log.Printf("failed to send FCM notification for letter %d: %v", event.LetterID, err)
				}
			}(e)
		}
	}
}
