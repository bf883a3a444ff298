package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, device_id, device_name, created_at, updated_at)
VALUES (:id, :device_id, :device_name, :created_at, :updated_at)`

	queryGetByID = `
SELECT id, device_id, device_name, created_at, updated_at
FROM users
    WHERE id = :id`

	queryGetByDeviceID = `
SELECT id, device_id, device_name, created_at, updated_at
FROM users
    WHERE device_id = :device_id`

	queryUpdateDeviceName = `
UPDATE users
SET device_name = :device_name,
    updated_at = :updated_at
    WHERE id = :id`
)
