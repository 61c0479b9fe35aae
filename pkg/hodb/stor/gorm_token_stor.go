package stor

import (
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type GormTokenStor struct {
	db *gorm.DB
}

func NewGormTokenStor(db *gorm.DB) *GormTokenStor {
	return &GormTokenStor{db: db}
}

func (s *GormTokenStor) GetDriveTokenForUser(userID int) (*oauth2.Token, error) {
	var user homodel.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		Expiry:       user.TokenExpiresAt,
	}, nil
}

func (s *GormTokenStor) SaveDriveTokenForUser(userID int, token *oauth2.Token) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&homodel.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"access_token":     token.AccessToken,
				"refresh_token":    token.RefreshToken,
				"token_expires_at": token.Expiry,
			}).Error
	})
}
