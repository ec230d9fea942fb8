package services

import (
	"errors"
	"fmt"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput carries the fields for account creation.
type SignupInput struct {
	Username  string
	Password  string
	Email     string
	FullName  *string
	Providers []uint64
}

// ProfileUpdate carries optional profile fields; nil fields are left unchanged.
type ProfileUpdate struct {
	Email    *string
	FullName *string
	Password *string
}

// Signup creates a user, their root folder, and any requested provider
// connections. Returns types.ErrExists on duplicate username or email.
func Signup(st storage.Storage, in SignupInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", types.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
		FullName: in.FullName,
	}
	if err := st.CreateUser(user); err != nil {
		return nil, err
	}

	// Every account gets exactly one root folder.
	root := &models.Folder{
		Name:   "My Drive",
		UserID: user.ID,
		Path:   "/",
		IsRoot: true,
	}
	if err := st.CreateFolder(root); err != nil {
		return nil, err
	}

	// Provider connections requested at signup are best effort; an unknown
	// catalog id does not fail account creation.
	for _, providerID := range in.Providers {
		if _, err := ConnectProvider(st, user.ID, providerID, nil); err != nil &&
			!errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
	}

	return user, nil
}

// Login verifies credentials and returns the user.
// Unknown users and bad passwords are indistinguishable to the caller.
func Login(st storage.Storage, username, password string) (*models.User, error) {
	user, err := st.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, types.ErrUnauthorized
	}

	return user, nil
}

// UpdateProfile applies a partial profile update.
func UpdateProfile(st storage.Storage, userID uint64, upd ProfileUpdate) (*models.User, error) {
	user, err := st.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if other, err := st.GetUserByEmail(*upd.Email); err == nil && other.ID != userID {
			return nil, types.ErrExists
		}
		user.Email = *upd.Email
	}
	if upd.FullName != nil {
		user.FullName = upd.FullName
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := st.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}
