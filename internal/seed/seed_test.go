package seed

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to be persisted with an ID")
	}
	if user.Username == "" || user.Email == "" {
		t.Fatalf("expected generated identity, got %q / %q", user.Username, user.Email)
	}

	custom, err := f.CreateUser(func(u *models.User) {
		u.Username = "fixed_name"
	})
	if err != nil {
		t.Fatalf("CreateUser with override: %v", err)
	}
	if custom.Username != "fixed_name" {
		t.Fatalf("override not applied: %q", custom.Username)
	}
}

func TestFactoryCreatePostAndComment(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	post, err := f.CreatePost(user)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.AuthorID != user.ID {
		t.Fatalf("post author = %d, want %d", post.AuthorID, user.ID)
	}
	if len(post.Content) < 10 {
		t.Fatalf("generated post content too short: %q", post.Content)
	}

	comment, err := f.CreateComment(user, post)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.PostID != post.ID {
		t.Fatalf("comment post = %d, want %d", comment.PostID, post.ID)
	}
}

func TestSeederRunAndClear(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	if err := s.Run(3, 5); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var userCount, postCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	if userCount != 3 {
		t.Fatalf("user count = %d, want 3", userCount)
	}
	if postCount != 5 {
		t.Fatalf("post count = %d, want 5", postCount)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 0 {
		t.Fatalf("user count after clear = %d, want 0", userCount)
	}
}
