package models

import "time"

// Vault is a named container owned by one user. The master key and salt are
// ciphertext produced on the client; the server never interprets them.
type Vault struct {
	ID                 string     `json:"id" db:"id"`
	UserID             string     `json:"user_id" db:"user_id"`
	Name               string     `json:"name" db:"name"`
	EncryptedMasterKey string     `json:"encrypted_master_key" db:"encrypted_master_key"`
	Salt               string     `json:"salt" db:"salt"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	LastAccessed       *time.Time `json:"last_accessed" db:"last_accessed"`
	IsSynced           bool       `json:"is_synced" db:"is_synced"`
}

// SafeVault mirrors Vault; the encrypted fields are opaque ciphertext and are
// safe to return to the owning client.
type SafeVault struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	EncryptedMasterKey string     `json:"encrypted_master_key"`
	Salt               string     `json:"salt"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastAccessed       *time.Time `json:"last_accessed"`
	IsSynced           bool       `json:"is_synced"`
}

func (v *Vault) SafeObject() *SafeVault {
	if v == nil {
		return nil
	}
	return &SafeVault{
		ID:                 v.ID,
		UserID:             v.UserID,
		Name:               v.Name,
		EncryptedMasterKey: v.EncryptedMasterKey,
		Salt:               v.Salt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		LastAccessed:       v.LastAccessed,
		IsSynced:           v.IsSynced,
	}
}
