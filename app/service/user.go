package service

import (
	"context"
	"errors"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID uint64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint64, name, email, phoneNumber string) (*entity.User, error)
}

type userService struct {
	userRepo userRepository
}

func NewUserService(userRepo userRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint64, name, email, phoneNumber string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = name
	user.Email = email
	user.PhoneNumber = phoneNumber

	if err = s.userRepo.Update(ctx, user); err != nil {
		// A verified account moving onto a contact another verified account
		// already owns trips the uniqueness index.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrContactTaken
		}
		return nil, err
	}

	return user, nil
}
