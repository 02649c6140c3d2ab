package service

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/permission"
	"backoffice/internal/store"
	"backoffice/pkg/pagination"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type CreateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	RoleID          string `json:"role_id" binding:"required"`
	Status          string `json:"status"`
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	BadgeNumber     string `json:"badge_number"`
	Title           string `json:"title"`
	Notes           string `json:"notes"`
}

type UpdateUserRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	RoleID          string `json:"role_id"`
	Status          string `json:"status"`
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	BadgeNumber     string `json:"badge_number"`
	Title           string `json:"title"`
	Notes           string `json:"notes"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	RoleID      string `json:"role_id"`
	Status      string `json:"status"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	BadgeNumber string `json:"badge_number"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
	IsAdmin     bool   `json:"is_admin"`
	DateCreated string `json:"date_created"`
	UpdatedAt   string `json:"updated_at"`
}

type MeResponse struct {
	User   UserResponse        `json:"user"`
	Grants map[string][]string `json:"grants"`
}

// --- Interface ---

type UserService interface {
	Login(req LoginRequest) (*TokenResponse, error)
	GetMe(actor Actor) (*MeResponse, error)
	ListUsers(p pagination.Params) ([]UserResponse, int64, error)
	GetUser(id string) (*UserResponse, error)
	CreateUser(req CreateUserRequest, actor Actor) (*UserResponse, error)
	UpdateUser(id string, req UpdateUserRequest, actor Actor) (*UserResponse, error)
	DeleteUser(id string, actor Actor) error
}

type userService struct {
	users  *store.Collection[model.User]
	roles  *store.Collection[model.Role]
	engine *permission.Engine
	audit  AuditService
}

func NewUserService(users *store.Collection[model.User], roles *store.Collection[model.Role], engine *permission.Engine, audit AuditService) UserService {
	return &userService{users: users, roles: roles, engine: engine, audit: audit}
}

// --- Implementation ---

func (s *userService) Login(req LoginRequest) (*TokenResponse, error) {
	var user *model.User
	for _, u := range s.users.Scan() {
		if u.Username == req.Username {
			user = &u
			break
		}
	}
	if user == nil {
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	// only revealed once the caller has proven the password
	if user.Status != model.StatusActive {
		return nil, errors.New("account is inactive")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role_id":  user.RoleID,
	})

	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: tokenString}, nil
}

func (s *userService) GetMe(actor Actor) (*MeResponse, error) {
	user, err := s.users.FindByID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &MeResponse{
		User:   toUserResponse(user),
		Grants: s.engine.GrantsFor(user.RoleID),
	}, nil
}

func (s *userService) ListUsers(p pagination.Params) ([]UserResponse, int64, error) {
	all := s.users.Scan()
	total := int64(len(all))

	page := pagination.Slice(all, p)
	res := make([]UserResponse, 0, len(page))
	for _, u := range page {
		res = append(res, toUserResponse(u))
	}
	return res, total, nil
}

func (s *userService) GetUser(id string) (*UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) CreateUser(req CreateUserRequest, actor Actor) (*UserResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, errors.New("password confirmation does not match")
	}

	// A save with an unresolvable role id is rejected
	if _, err := s.roles.FindByID(req.RoleID); err != nil {
		return nil, fmt.Errorf("role '%s' does not exist", req.RoleID)
	}

	// Username uniqueness: full scan, case-sensitive exact match, create-time only
	for _, u := range s.users.Scan() {
		if u.Username == req.Username {
			return nil, errors.New("username already exists")
		}
	}

	status := req.Status
	if status == "" {
		status = model.StatusActive
	}
	if status != model.StatusActive && status != model.StatusInactive {
		return nil, fmt.Errorf("invalid status '%s'", status)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hashed),
		RoleID:       req.RoleID,
		Status:       status,
		Name:         req.Name,
		Email:        req.Email,
		BadgeNumber:  req.BadgeNumber,
		Title:        req.Title,
		Notes:        req.Notes,
		IsAdmin:      s.engine.IsGranted(req.RoleID, permission.ModuleAdmin, permission.ActionView),
		DateCreated:  model.NewTimestamp(now),
		UpdatedAt:    now,
	}

	if err := s.users.Insert(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(actor, model.ActionCreateUser, user.ID, user.Username, nil)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(id string, req UpdateUserRequest, actor Actor) (*UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if req.RoleID != "" {
		if _, err := s.roles.FindByID(req.RoleID); err != nil {
			return nil, fmt.Errorf("role '%s' does not exist", req.RoleID)
		}
		user.RoleID = req.RoleID
	}

	if req.Password != "" {
		if req.Password != req.PasswordConfirm {
			return nil, errors.New("password confirmation does not match")
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, errors.New("failed to hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if req.Status != "" {
		if req.Status != model.StatusActive && req.Status != model.StatusInactive {
			return nil, fmt.Errorf("invalid status '%s'", req.Status)
		}
		user.Status = req.Status
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.BadgeNumber != "" {
		user.BadgeNumber = req.BadgeNumber
	}
	if req.Title != "" {
		user.Title = req.Title
	}
	if req.Notes != "" {
		user.Notes = req.Notes
	}

	// Recomputed at every save, never trusted as ground truth elsewhere
	user.IsAdmin = s.engine.IsGranted(user.RoleID, permission.ModuleAdmin, permission.ActionView)
	user.UpdatedAt = time.Now()

	if err := s.users.Update(id, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Record(actor, model.ActionUpdateUser, user.ID, user.Username, nil)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(id string, actor Actor) error {
	if id == actor.ID {
		return errors.New("cannot delete your own account")
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := s.users.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit.Record(actor, model.ActionDeleteUser, id, user.Username, nil)
	return nil
}

// --- Helpers ---

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		RoleID:      u.RoleID,
		Status:      u.Status,
		Name:        u.Name,
		Email:       u.Email,
		BadgeNumber: u.BadgeNumber,
		Title:       u.Title,
		Notes:       u.Notes,
		IsAdmin:     u.IsAdmin,
		DateCreated: u.DateCreated.Format("2006-01-02 15:04:05"),
		UpdatedAt:   u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
