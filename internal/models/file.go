package models

import "time"

// FileMetadata describes one encrypted file stored by a client device. Only
// metadata lives on the server; the blob itself never leaves the device.
type FileMetadata struct {
	ID            string    `json:"id" db:"id"`
	VaultID       string    `json:"vault_id" db:"vault_id"`
	EncryptedName string    `json:"encrypted_name" db:"encrypted_name"`
	FileType      *string   `json:"file_type" db:"file_type"`
	SizeBytes     *int64    `json:"size_bytes" db:"size_bytes"`
	EncryptedPath *string   `json:"encrypted_path" db:"encrypted_path"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	DeviceID      *string   `json:"device_id" db:"device_id"`
	IsBackedUp    bool      `json:"is_backed_up" db:"is_backed_up"`
}
