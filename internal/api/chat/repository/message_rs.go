package chatRepository

import (
	"context"
	"database/sql"
	"time"

	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ChatMessageDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Role      sql.NullString `db:"role"`
	Content   sql.NullString `db:"content"`
	Mode      sql.NullString `db:"mode"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *messageRepository) Insert(c context.Context, m entity.ChatMessage) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id":         m.ID,
		"user_id":    m.UserID,
		"role":       m.Role,
		"content":    m.Content,
		"mode":       m.Mode,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryInsertChatMessage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Insert chat message")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when inserting chat message")
		return err
	}

	return nil
}

// ListRecent returns the newest messages in chronological order so callers
// can render them top to bottom without re-sorting.
func (r *messageRepository) ListRecent(c context.Context, userID string, limit int) ([]entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListRecentChatMessages, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecent chat messages named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ChatMessageDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing chat messages")
		return nil, err
	}

	messages := make([]entity.ChatMessage, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		messages = append(messages, makeChatMessage(rows[i]))
	}

	return messages, nil
}

func makeChatMessage(row ChatMessageDB) entity.ChatMessage {
	return entity.ChatMessage{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Role:      row.Role.String,
		Content:   row.Content.String,
		Mode:      row.Mode.String,
		CreatedAt: row.CreatedAt.Time,
	}
}
