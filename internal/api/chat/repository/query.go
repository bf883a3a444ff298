package chatRepository

const (
	queryInsertChatMessage = `
INSERT INTO chat_messages (id, user_id, role, content, mode, created_at)
VALUES (:id, :user_id, :role, :content, :mode, :created_at)`

	queryListRecentChatMessages = `
SELECT id, user_id, role, content, mode, created_at
FROM chat_messages
    WHERE user_id = :user_id
ORDER BY created_at DESC
LIMIT :limit`
)
