// Package seed provides database seeding utilities for development and testing.
package seed

import (
	_ "embed"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ironlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed lift_types.yaml
var liftTypesYAML []byte

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumLogs     int
	ShouldClean bool
}

type liftCatalog struct {
	Lifts []struct {
		Name        string `yaml:"name"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
	} `yaml:"lifts"`
}

// LiftTypes loads the embedded lift catalog and upserts it. Safe to run on
// every startup; existing names are left untouched.
func LiftTypes(db *gorm.DB) error {
	var catalog liftCatalog
	if err := yaml.Unmarshal(liftTypesYAML, &catalog); err != nil {
		return fmt.Errorf("failed to parse lift catalog: %w", err)
	}

	types := make([]models.LiftType, 0, len(catalog.Lifts))
	for _, l := range catalog.Lifts {
		types = append(types, models.LiftType{
			Name:        l.Name,
			Category:    l.Category,
			Description: l.Description,
		})
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&types).Error
}

// Seed populates the database with demo users, logs and social activity.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d logs...", opts.NumUsers, opts.NumLogs)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	if err := LiftTypes(db); err != nil {
		return err
	}

	var liftTypes []models.LiftType
	if err := db.Find(&liftTypes).Error; err != nil {
		return err
	}

	profiles, err := seedProfiles(db, opts.NumUsers)
	if err != nil {
		return err
	}

	logs, err := seedLogs(db, r, profiles, liftTypes, opts.NumLogs)
	if err != nil {
		return err
	}

	if err := seedSocial(db, r, profiles, logs); err != nil {
		return err
	}

	log.Printf("Seeding complete: %d profiles, %d logs", len(profiles), len(logs))
	return nil
}

func seedProfiles(db *gorm.DB, n int) ([]models.Profile, error) {
	if n <= 0 {
		n = 10
	}

	// One shared hash keeps seeding fast; these are throwaway accounts.
	hash, err := bcrypt.GenerateFromPassword([]byte("DemoPassword12!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, i))
		p := models.Profile{
			Username:     username,
			Email:        fmt.Sprintf("%s@example.com", username),
			PasswordHash: string(hash),
			FullName:     first + " " + last,
		}
		profiles = append(profiles, p)
	}

	if err := db.Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func seedLogs(db *gorm.DB, r *rand.Rand, profiles []models.Profile, liftTypes []models.LiftType, n int) ([]models.Log, error) {
	if n <= 0 {
		n = 200
	}
	if len(profiles) == 0 || len(liftTypes) == 0 {
		return nil, nil
	}

	logs := make([]models.Log, 0, n)
	for i := 0; i < n; i++ {
		profile := profiles[r.Intn(len(profiles))]
		lt := liftTypes[r.Intn(len(liftTypes))]

		weight := 95 + float64(r.Intn(60))*5 // 95 to 390 in 5 lb steps
		reps := 1 + r.Intn(8)
		daysBack := r.Intn(75)
		logged := time.Now().UTC().
			AddDate(0, 0, -daysBack).
			Add(-time.Duration(r.Intn(12)) * time.Hour)

		entry := models.Log{
			UserID:     profile.ID,
			LiftTypeID: &lt.ID,
			Weight:     weight,
			Unit:       "lbs",
			Reps:       reps,
			DateLogged: logged,
		}
		if r.Intn(4) == 0 {
			rpe := 6 + r.Intn(5)
			entry.RPE = &rpe
		}
		if r.Intn(5) == 0 {
			entry.Notes = gofakeit.Sentence(6)
		}
		logs = append(logs, entry)
	}

	if err := db.CreateInBatches(&logs, 100).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func seedSocial(db *gorm.DB, r *rand.Rand, profiles []models.Profile, logs []models.Log) error {
	if len(profiles) == 0 || len(logs) == 0 {
		return nil
	}

	cheers := []string{
		"Huge lift!", "Strong work.", "That bar speed though.",
		"PR city.", "Smooth rep.", "Light weight!", "Depth looked great.",
	}

	var likes []models.Like
	var comments []models.Comment
	for _, l := range logs {
		// Roughly a third of logs pick up some engagement.
		if r.Intn(3) != 0 {
			continue
		}
		seen := map[uint]bool{}
		for i := 0; i < 1+r.Intn(3); i++ {
			p := profiles[r.Intn(len(profiles))]
			if p.ID == l.UserID || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			likes = append(likes, models.Like{UserID: p.ID, LogID: l.ID})
		}
		if r.Intn(4) == 0 {
			p := profiles[r.Intn(len(profiles))]
			comments = append(comments, models.Comment{
				UserID:  p.ID,
				LogID:   l.ID,
				Content: cheers[r.Intn(len(cheers))],
			})
		}
	}

	if len(likes) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&likes, 200).Error; err != nil {
			return err
		}
	}
	if len(comments) > 0 {
		if err := db.CreateInBatches(&comments, 200).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE likes, comments, logs, body_measurements, profiles RESTART IDENTITY CASCADE").Error
}
