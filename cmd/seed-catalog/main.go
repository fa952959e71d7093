package main

import (
	"fmt"
	"log"
	"time"

	"childrens-bookshop/internal/config"
	"childrens-bookshop/internal/database"
	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

func intPtr(v int) *int {
	return &v
}

func main() {
	fmt.Println("🌱 Seeding the bookshop catalog")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repositories.NewCategoryRepository(db.DB)
	bookRepo := repositories.NewBookRepository(db.DB)
	promotionRepo := repositories.NewPromotionRepository(db.DB)

	categories := []models.CategoryCreateRequest{
		{Name: "Picture Books", Slug: "picture-books", Description: "Big pictures and little words for ages 2-6"},
		{Name: "Early Readers", Slug: "early-readers", Description: "First chapter books for new readers"},
		{Name: "Middle Grade", Slug: "middle-grade", Description: "Adventures for ages 8-12"},
		{Name: "Bedtime Stories", Slug: "bedtime-stories", Description: "Gentle stories to end the day"},
	}

	categoryIDs := make(map[string]int)
	for i := range categories {
		category, err := categoryRepo.Create(&categories[i])
		if err != nil {
			// Re-running the seeder hits the unique slug constraint
			existing, lookupErr := categoryRepo.GetBySlug(categories[i].Slug)
			if lookupErr != nil {
				log.Fatalf("Failed to create category %q: %v", categories[i].Name, err)
			}
			category = existing
		}
		categoryIDs[category.Slug] = category.ID
		fmt.Printf("✅ Category ready: %s (ID %d)\n", category.Name, category.ID)
	}

	books := []models.BookCreateRequest{
		{
			CategoryID:  categoryIDs["picture-books"],
			Title:       "Where the Wild Things Are",
			Author:      "Maurice Sendak",
			Slug:        "where-the-wild-things-are",
			Description: "Max sails to the land of the Wild Things and becomes their king.",
			Price:       1299,
			Rating:      5,
			Available:   true,
			Featured:    true,
		},
		{
			CategoryID:  categoryIDs["picture-books"],
			Title:       "The Very Hungry Caterpillar",
			Author:      "Eric Carle",
			Slug:        "the-very-hungry-caterpillar",
			Description: "A caterpillar eats its way through the week.",
			Price:       999,
			WasPrice:    intPtr(1399),
			Rating:      5,
			Available:   true,
			Featured:    true,
		},
		{
			CategoryID:  categoryIDs["bedtime-stories"],
			Title:       "Goodnight Moon",
			Author:      "Margaret Wise Brown",
			Slug:        "goodnight-moon",
			Description: "Saying goodnight to everything in the great green room.",
			Price:       750,
			Rating:      4,
			Available:   true,
			Featured:    true,
		},
		{
			CategoryID:  categoryIDs["early-readers"],
			Title:       "Frog and Toad Are Friends",
			Author:      "Arnold Lobel",
			Slug:        "frog-and-toad-are-friends",
			Description: "Five stories about two best friends.",
			Price:       899,
			Rating:      5,
			Available:   true,
		},
		{
			CategoryID:  categoryIDs["middle-grade"],
			Title:       "Charlotte's Web",
			Author:      "E. B. White",
			Slug:        "charlottes-web",
			Description: "Some Pig. A spider saves her friend with words in her web.",
			Price:       1150,
			WasPrice:    intPtr(1450),
			Rating:      5,
			Available:   true,
			Featured:    true,
		},
		{
			CategoryID:  categoryIDs["middle-grade"],
			Title:       "Matilda",
			Author:      "Roald Dahl",
			Slug:        "matilda",
			Description: "A brilliant girl takes on the terrifying Miss Trunchbull.",
			Price:       1050,
			Rating:      4,
			Available:   true,
		},
	}

	for i := range books {
		book, err := bookRepo.Create(&books[i])
		if err != nil {
			existing, lookupErr := bookRepo.GetBySlug(books[i].Slug)
			if lookupErr != nil {
				log.Fatalf("Failed to create book %q: %v", books[i].Title, err)
			}
			book = existing
		}
		fmt.Printf("✅ Book ready: %s by %s (ID %d)\n", book.Title, book.Author, book.ID)
	}

	promotions := []models.PromotionCreateRequest{
		{
			Kind:            models.FlashSale,
			Name:            "Weekend Flash Sale",
			DiscountPercent: 20,
			EndsAt:          time.Now().Add(72 * time.Hour),
		},
		{
			Kind:            models.DealOfTheWeek,
			Name:            "Picture Book of the Week",
			DiscountPercent: 15,
			EndsAt:          time.Now().Add(7 * 24 * time.Hour),
		},
	}

	for i := range promotions {
		// Promotions have no unique slug, so re-runs skip any kind that
		// already has an active promotion
		if existing, err := promotionRepo.GetActiveByKind(promotions[i].Kind, time.Now()); err == nil {
			fmt.Printf("✅ Promotion ready: %s ends %s\n", existing.Name, existing.EndsAt.Format(time.RFC822))
			continue
		}
		promotion, err := promotionRepo.Create(&promotions[i])
		if err != nil {
			log.Fatalf("Failed to create promotion %q: %v", promotions[i].Name, err)
		}
		fmt.Printf("✅ Promotion ready: %s ends %s\n", promotion.Name, promotion.EndsAt.Format(time.RFC822))
	}

	fmt.Println("🎉 Catalog seeded")
}
