package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated users, posts, and comments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
	}
}

// ClearAll deletes all seeded data. Comments go first, then posts, then
// users, to satisfy foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run generates numUsers users, numPosts posts spread across them, and a
// small number of comments per post.
func (s *Seeder) Run(numUsers, numPosts int) error {
	log.Printf("Seeding %d users...", numUsers)
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	log.Printf("Seeding %d posts...", numPosts)
	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("seed post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	log.Println("Seeding comments...")
	var total int
	for _, post := range posts {
		n := s.factory.rand.Intn(6)
		for i := 0; i < n; i++ {
			author := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return fmt.Errorf("seed comment on post %d: %w", post.ID, err)
			}
			total++
		}
	}
	log.Printf("Seeded %d comments", total)

	return nil
}
