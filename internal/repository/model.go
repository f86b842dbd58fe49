package repository

import "gorm.io/gorm"

// ProviderCredential is a Boxcar provider registered with the gateway. Name
// is the path segment clients use; APIKey and APISecret are the Boxcar
// provider token and secret.
type ProviderCredential struct {
	gorm.Model

	Name      string `gorm:"uniqueIndex;not null"`
	APIKey    string `gorm:"column:api_key;not null"`
	APISecret string `gorm:"column:api_secret;not null" json:"-"`
}
