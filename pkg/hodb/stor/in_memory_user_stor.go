package stor

import (
	"github.com/gosimple/slug"
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type InMemoryUserStor struct {
	ErrToReturn error
	users       []homodel.User
	lastID      int
}

func NewInMemoryUserStor(users []homodel.User) *InMemoryUserStor {
	return &InMemoryUserStor{
		users:  users,
		lastID: 10000,
	}
}

func (s *InMemoryUserStor) CreateUser(user *homodel.User) (*homodel.User, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	var err error
	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	user.Slug = slug.Make(user.Name)
	s.lastID = s.lastID + 1
	user.ID = s.lastID
	s.users = append(s.users, *user)

	return user, nil
}

func (s *InMemoryUserStor) GetUserByID(userID int) (*homodel.User, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	for i := range s.users {
		if s.users[i].ID == userID {
			u := s.users[i]
			return &u, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *InMemoryUserStor) GetUserByEmail(email string) (*homodel.User, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *InMemoryUserStor) GetUserBySlug(userSlug string) (*homodel.User, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	for i := range s.users {
		if s.users[i].Slug == userSlug {
			u := s.users[i]
			return &u, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *InMemoryUserStor) GetUserByAPIToken(apitoken string) (*homodel.User, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	for i := range s.users {
		if s.users[i].ApiToken == apitoken {
			u := s.users[i]
			return &u, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}
