package utils

import (
	"encoding/json"
	"log"

	"lms/models"
	"lms/realtime"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier is the best-effort side-effect dispatcher: notification rows,
// push events and activity log entries. Every method is at-most-once and
// fire-and-forget; failures are logged and swallowed so they can never
// change the outcome of the request that triggered them.
type Notifier struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewNotifier(db *gorm.DB, hub *realtime.Hub) *Notifier {
	return &Notifier{DB: db, Hub: hub}
}

func toJSON(data map[string]interface{}) datatypes.JSON {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshalling notification data: %v", err)
		return nil
	}
	return datatypes.JSON(raw)
}

// Notify stores a notification and pushes it to the user's room
func (n *Notifier) Notify(userID uint, nType, title, body string, data map[string]interface{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered in notifier: %v", r)
			}
		}()

		notification := models.Notification{
			UserID: userID,
			Type:   nType,
			Title:  title,
			Body:   body,
			Data:   toJSON(data),
		}

		if err := n.DB.Create(&notification).Error; err != nil {
			log.Printf("Error saving notification for user %d: %v", userID, err)
			return
		}

		n.Hub.Push(userID, "notification", notification)
		n.PushUnreadCount(userID)
	}()
}

// PushUnreadCount sends the user's current unread total over the push channel
func (n *Notifier) PushUnreadCount(userID uint) {
	var count int64
	if err := n.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Count(&count).Error; err != nil {
		log.Printf("Error counting unread notifications for user %d: %v", userID, err)
		return
	}

	n.Hub.Push(userID, "unread_count", map[string]interface{}{"count": count})
}

// LogActivity records an audit entry without affecting the caller
func (n *Notifier) LogActivity(userID uint, action, entity string, entityID uint, metadata map[string]interface{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered in activity logger: %v", r)
			}
		}()

		entry := models.ActivityLog{
			UserID:   userID,
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			Metadata: toJSON(metadata),
		}

		if err := n.DB.Create(&entry).Error; err != nil {
			log.Printf("Error writing activity log (%s %s/%d): %v", action, entity, entityID, err)
		}
	}()
}
