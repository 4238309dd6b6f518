package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivehq/strive/internal/model"
)

func TestUserRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	user := &model.User{ID: "u1", Subject: "sub-1", Email: "ada@example.com", Name: "Ada", CreatedAt: time.Now()}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "sub-1", "ada@example.com", "Ada", user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(user)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	tests := []struct {
		name   string
		driver error
	}{
		{"sqlite", errors.New("UNIQUE constraint failed: users.email")},
		{"postgres", errors.New(`duplicate key value violates unique constraint "users_email_key"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectExec("INSERT INTO users").WillReturnError(tt.driver)

			err := repo.Create(&model.User{ID: "u1", Email: "dup@example.com"})
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		})
	}
}

func TestUserRepositoryByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepositoryByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "subject", "email", "name"}).
		AddRow("u1", "sub-1", "ada@example.com", "Ada")

	mock.ExpectQuery("SELECT \\* FROM users").
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	user, err := repo.ByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.Name)
}
