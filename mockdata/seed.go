package mockdata

import (
	"context"
	"time"

	"sahne-client/models"
	"sahne-client/utils"
)

// Comptes de démonstration (mot de passe commun)
const (
	DemoPassword    = "password123"
	DemoClientEmail = "demo@sahne.com"
)

type packageSeed struct {
	id            int64
	kind          string
	title         string
	description   string
	price         float64
	courses       int
	durationHours int
	maxGuests     int
	includesWine  bool
}

type chefSeed struct {
	id              int64
	userID          int64
	name            string
	email           string
	phone           string
	title           string
	bio             string
	philosophy      string
	experienceYears int
	specialties     []string
	rating          float64
	totalReviews    int
	packages        []packageSeed
}

var chefSeeds = []chefSeed{
	{
		id:              1,
		userID:          101,
		name:            "Mehmet Yılmaz",
		email:           "mehmet@sahne.com",
		phone:           "+905551234567",
		title:           "Modern Turkish Cuisine",
		bio:             "Michelin-starred chef specializing in modern Turkish cuisine with 15 years of experience.",
		philosophy:      "Seasonal Anatolian produce, Ottoman techniques, contemporary plating.",
		experienceYears: 15,
		specialties:     []string{"Turkish", "Ottoman", "Mediterranean"},
		rating:          4.9,
		totalReviews:    127,
		packages: []packageSeed{
			{id: 1, kind: "signature", title: "Ottoman Feast", description: "7-course traditional Ottoman menu", price: 2500, courses: 7, durationHours: 4, maxGuests: 8},
			{id: 2, kind: "essential", title: "Modern Turkish", description: "5-course contemporary Turkish cuisine", price: 1800, courses: 5, durationHours: 3, maxGuests: 6},
		},
	},
	{
		id:              2,
		userID:          102,
		name:            "Elena Romano",
		email:           "elena@sahne.com",
		phone:           "+905552345678",
		title:           "Authentic Italian",
		bio:             "Italian cuisine master, trained in Rome. Expert in pasta, risotto, and authentic Italian flavors.",
		philosophy:      "Few ingredients, treated with respect.",
		experienceYears: 12,
		specialties:     []string{"Italian", "Pasta", "Mediterranean"},
		rating:          4.8,
		totalReviews:    98,
		packages: []packageSeed{
			{id: 3, kind: "signature", title: "Taste of Italy", description: "6-course authentic Italian menu", price: 2200, courses: 6, durationHours: 4, maxGuests: 10, includesWine: true},
		},
	},
	{
		id:              3,
		userID:          103,
		name:            "Takeshi Nakamura",
		email:           "takeshi@sahne.com",
		phone:           "+905553456789",
		title:           "Japanese Culinary Artist",
		bio:             "Japanese culinary artist with expertise in sushi, kaiseki, and traditional Japanese cooking techniques.",
		philosophy:      "Shun: every ingredient at the peak of its season.",
		experienceYears: 18,
		specialties:     []string{"Japanese", "Sushi", "Kaiseki"},
		rating:          5.0,
		totalReviews:    156,
		packages: []packageSeed{
			{id: 4, kind: "ultimate", title: "Omakase Experience", description: "10-course chef's choice premium menu", price: 3500, courses: 10, durationHours: 4, maxGuests: 6},
			{id: 5, kind: "signature", title: "Sushi Masterclass", description: "Interactive sushi-making with dinner", price: 2800, courses: 4, durationHours: 3, maxGuests: 8},
		},
	},
}

var istanbul = models.Region{ID: 34, Name: "İstanbul", Code: "IST"}

// seed remplit des repositories vides avec les chefs et les comptes de démonstration
func (s *Store) seed(ctx context.Context) error {
	now := models.FlexibleTime{Time: s.now().UTC().Truncate(time.Second)}
	hash := utils.MustHashPassword(DemoPassword)

	demo := &models.Account{
		User:         models.User{ID: 1, Name: "Ayşe Demir", Email: DemoClientEmail, Phone: "05321234567", Role: models.RoleClient, CreatedAt: now, UpdatedAt: now},
		PasswordHash: hash,
	}
	if err := s.repos.Users.Create(ctx, demo); err != nil {
		return err
	}

	var lastChefID int64
	for _, cs := range chefSeeds {
		acc := &models.Account{
			User:         models.User{ID: cs.userID, Name: cs.name, Email: cs.email, Phone: cs.phone, Role: models.RoleChef, CreatedAt: now, UpdatedAt: now},
			PasswordHash: hash,
		}
		if err := s.repos.Users.Create(ctx, acc); err != nil {
			return err
		}

		chef := &models.ChefRecord{
			ID:              cs.id,
			UserID:          cs.userID,
			Title:           cs.title,
			Bio:             cs.bio,
			Philosophy:      cs.philosophy,
			ExperienceYears: cs.experienceYears,
			Specialties:     cs.specialties,
			Rating:          cs.rating,
			TotalReviews:    cs.totalReviews,
			Active:          true,
			CreatedAt:       now,
		}
		for _, p := range cs.packages {
			description := p.description
			chef.Packages = append(chef.Packages, models.PackageRecord{
				ExperiencePackage: models.ExperiencePackage{
					ID:             p.id,
					Type:           p.kind,
					DisplayName:    p.title,
					BasePrice:      p.price,
					PricePerPerson: p.price,
					CoursesCount:   p.courses,
					Description:    &description,
					IncludesWine:   p.includesWine,
					IsActive:       true,
				},
				DurationHours: p.durationHours,
				MaxGuests:     p.maxGuests,
			})
		}
		if err := s.repos.Chefs.Save(ctx, chef); err != nil {
			return err
		}
		if cs.id > lastChefID {
			lastChefID = cs.id
		}
	}

	// Les inscriptions démarrent à 200 pour ne pas croiser les comptes chef de démonstration
	if err := s.repos.Sequences.Ensure(ctx, SequenceUsers, 199); err != nil {
		return err
	}
	return s.repos.Sequences.Ensure(ctx, SequenceChefs, lastChefID)
}
