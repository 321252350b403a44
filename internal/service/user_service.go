package service

import (
	"context"

	"github.com/d60-Lab/blog-platform/internal/repository"
)

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListAuthors(ctx context.Context) ([]*Author, error) {
	users, err := s.users.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Author, len(users))
	for i, u := range users {
		name := u.Name
		if name == "" {
			name = "Unnamed Author"
		}
		out[i] = &Author{ID: u.ID, Name: name, Role: u.Role}
	}
	return out, nil
}
