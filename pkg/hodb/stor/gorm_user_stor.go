package stor

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user. The slug is derived from the user's name;
// on a collision an incrementing integer is appended and the create retried.
func (s *GormUserStor) CreateUser(user *homodel.User) (*homodel.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	slugOfName := slug.Make(user.Name)
	user.Slug = slugOfName
	slugNext := 1

	for {
		err = WithTxRetry(s.db, func(tx *gorm.DB) error {
			return tx.Create(user).Error
		})

		if err == nil {
			return user, nil
		}

		if slugNext > 5 {
			return nil, err
		}

		// Assume the failure was a unique violation on the slug; add an
		// incrementing integer and try again.
		user.Slug = fmt.Sprintf("%s-%d", slugOfName, slugNext)
		slugNext = slugNext + 1
	}
}

func (s *GormUserStor) GetUserByID(userID int) (*homodel.User, error) {
	var user homodel.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByEmail(email string) (*homodel.User, error) {
	var user homodel.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *GormUserStor) GetUserBySlug(userSlug string) (*homodel.User, error) {
	var user homodel.User
	if err := s.db.Where("slug = ?", userSlug).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*homodel.User, error) {
	var user homodel.User
	if err := s.db.Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
