package docrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
)

// userDocument is the stored form of account.User; the password hash never leaves the store
// through the JSON form of the domain type.
type userDocument struct {
	Email        string    `json:"email" bson:"email"`
	FullName     string    `json:"fullName" bson:"fullName"`
	DisplayName  string    `json:"displayName" bson:"displayName"`
	PhoneNumber  string    `json:"phoneNumber" bson:"phoneNumber"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	PasswordHash []byte    `json:"passwordHash" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
	LastLogin    time.Time `json:"lastLogin" bson:"lastLogin"`
}

func toUserDocument(usr account.User) userDocument {
	return userDocument{
		Email:        usr.Email,
		FullName:     usr.FullName,
		DisplayName:  usr.DisplayName,
		PhoneNumber:  usr.PhoneNumber,
		IsActive:     usr.IsActive,
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
		LastLogin:    usr.LastLogin,
	}
}

func (d userDocument) toUser(uid string) account.User {
	return account.User{
		UID:          uid,
		Email:        d.Email,
		FullName:     d.FullName,
		DisplayName:  d.DisplayName,
		PhoneNumber:  d.PhoneNumber,
		IsActive:     d.IsActive,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		LastLogin:    d.LastLogin,
	}
}

type userRepository struct {
	db core.DocStore
}

var _ account.Repository = (*userRepository)(nil)

func NewUserRepository(db core.DocStore) account.Repository {
	return &userRepository{db: db}
}

func decodeUser(snap core.Snapshot) (account.User, error) {
	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return account.User{}, err
	}
	return doc.toUser(snap.ID()), nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr account.User) (account.User, error) {
	if err := repo.db.Create(ctx, core.CollectionUsers, usr.UID, toUserDocument(usr)); err != nil {
		return account.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, uid string) (account.User, error) {
	snap, err := repo.db.Get(ctx, core.CollectionUsers, uid)
	if err != nil {
		return account.User{}, notFound(errors.Wrap(err, "getting user"), account.ErrNotFound)
	}
	return decodeUser(snap)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionUsers, core.Where("email", email))
	if err != nil {
		return account.User{}, errors.Wrap(err, "querying users by email")
	}
	if len(snaps) == 0 {
		return account.User{}, account.ErrNotFound
	}
	return decodeUser(snaps[0])
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr account.User) (account.User, error) {
	if _, err := repo.GetUser(ctx, usr.UID); err != nil {
		return account.User{}, err
	}
	if err := repo.db.Set(ctx, core.CollectionUsers, usr.UID, toUserDocument(usr)); err != nil {
		return account.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}
