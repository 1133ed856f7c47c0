package service

import (
	"agrotrade/internal/config"
	entity "agrotrade/internal/domain"
	"agrotrade/internal/repository/userdir"
	utils "agrotrade/pkg"
)

// AuthService issues session tokens against the static user directory.
// There is no registration and no credential mutation; the directory is
// read-only.
type AuthService struct {
	users  userdir.UserDirectory
	jwtCfg config.JWT
}

func NewAuthService(users userdir.UserDirectory, jwtCfg config.JWT) *AuthService {
	return &AuthService{users: users, jwtCfg: jwtCfg}
}

func (s *AuthService) Login(username, password string) (*entity.LoginResponse, error) {
	user, ok := s.users.GetByUsername(username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtCfg)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		Token: token,
		User: entity.UserResp{
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// Profile resolves the directory entry behind a validated token.
func (s *AuthService) Profile(username string) (*entity.UserResp, error) {
	user, ok := s.users.GetByUsername(username)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &entity.UserResp{Username: user.Username, Role: user.Role}, nil
}
