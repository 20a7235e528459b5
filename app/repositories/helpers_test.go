package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialgraph/app/config"
	"socialgraph/app/database"
	"socialgraph/app/logging"
	"socialgraph/app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	url := "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(config.DatabaseConfig{URL: url}, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createTestUser(t *testing.T, repo UserRepository, name string) *models.User {
	user := &models.User{
		Username:     name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, repo PostRepository, owner *models.User, title string) *models.Post {
	post := &models.Post{Title: title, Description: "about " + title, CreatedByID: owner.ID}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}
