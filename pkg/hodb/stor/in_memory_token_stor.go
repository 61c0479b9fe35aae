package stor

import (
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type InMemoryTokenStor struct {
	ErrToReturn error
	tokens      map[int]*oauth2.Token
}

func NewInMemoryTokenStor() *InMemoryTokenStor {
	return &InMemoryTokenStor{tokens: make(map[int]*oauth2.Token)}
}

func (s *InMemoryTokenStor) GetDriveTokenForUser(userID int) (*oauth2.Token, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	token, ok := s.tokens[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	return token, nil
}

func (s *InMemoryTokenStor) SaveDriveTokenForUser(userID int, token *oauth2.Token) error {
	if s.ErrToReturn != nil {
		return s.ErrToReturn
	}

	s.tokens[userID] = token
	return nil
}
