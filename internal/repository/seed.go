package repository

import (
	"context"
	"fmt"
	"infinity-park/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedRepository inserts the park's reference data. Rows that already exist
// are left alone, so Seed is safe to run on every start.
type SeedRepository interface {
	Seed(ctx context.Context) error
}

type seedRepoImpl struct {
	db *gorm.DB
}

func NewSeedRepository(db *gorm.DB) SeedRepository {
	return &seedRepoImpl{
		db: db,
	}
}

func intPtr(v int) *int { return &v }

func (r *seedRepoImpl) Seed(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticketTypes := []model.TicketType{
			{Name: "Adult", Description: "Ticket for visitors over 12.", BasePrice: decimal.NewFromInt(150), MinAge: 13, MaxAge: 59, Active: true},
			{Name: "Child", Description: "Ticket for children aged 3 to 12.", BasePrice: decimal.NewFromInt(75), MinAge: 3, MaxAge: 12, Active: true},
			{Name: "Senior", Description: "Ticket for visitors over 60.", BasePrice: decimal.NewFromInt(70), MinAge: 60, MaxAge: 120, Active: true},
			{Name: "PCD", Description: "Ticket for visitors with disabilities (check companion rules).", BasePrice: decimal.Zero, MinAge: 0, MaxAge: 120, Active: true},
			{Name: "VIP Pass", Description: "Fast access to selected attractions and exclusive areas.", BasePrice: decimal.NewFromInt(300), MinAge: 0, MaxAge: 120, Active: true},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ticketTypes).Error; err != nil {
			return fmt.Errorf("seed ticket types: %w", err)
		}

		attractions := []model.Attraction{
			{
				Name:             "Alpha Roller Coaster",
				ShortDescription: "Loops and adrenaline!",
				Description:      "Pure adrenaline on a high-speed ride with vertical loops and breathtaking drops.",
				CapacityPerCycle: 32,
				CycleMinutes:     intPtr(3),
				MinHeightCM:      intPtr(140),
				MinAge:           intPtr(12),
				Kind:             "Thrill",
				MapLocation:      "East Thrill Area, Red Sector",
				ImagePath:        "assets/attraction_alpha_roller_coaster.png",
				Status:           model.AttractionOperational,
				LastMaintenance:  "2025-04-10",
				NextMaintenance:  "2025-07-10",
				ThrillLevel:      "Very High",
				Accessibility:    "Not wheelchair accessible. Restricted for pregnant visitors and heart conditions.",
			},
			{
				Name:             "Bela Vista Ferris Wheel",
				ShortDescription: "Panoramic view of the park.",
				Description:      "A spectacular view of the whole park and the surrounding landscape. Perfect for photos and relaxed family moments.",
				CapacityPerCycle: 40,
				CycleMinutes:     intPtr(15),
				MinHeightCM:      intPtr(100),
				MinAge:           intPtr(0),
				Kind:             "Family",
				MapLocation:      "Central Square, near the Main Entrance",
				ImagePath:        "assets/attraction_bela_vista_ferris_wheel.png",
				Status:           model.AttractionOperational,
				LastMaintenance:  "2025-03-15",
				NextMaintenance:  "2025-09-15",
				ThrillLevel:      "Low",
				Accessibility:    "Wheelchair accessible (special gondola).",
			},
			{
				Name:             "Bumper Cars",
				ShortDescription: "Classic fun for everyone.",
				Description:      "Speed up and have fun with friends and family on the classic bumper cars.",
				CapacityPerCycle: 20,
				CycleMinutes:     intPtr(4),
				MinHeightCM:      intPtr(90),
				MinAge:           intPtr(6),
				Kind:             "Family",
				MapLocation:      "West Kids Area, Yellow Sector",
				ImagePath:        "assets/attraction_bumper_cars.png",
				Status:           model.AttractionScheduledMaintenance,
				LastMaintenance:  "2025-05-12",
				NextMaintenance:  "2025-05-17",
				ThrillLevel:      "Medium",
				Accessibility:    "Accessible with boarding assistance.",
			},
			{
				Name:              "Rio Bravo Kids",
				ShortDescription:  "Water adventure for the little ones.",
				Description:       "Gentle rapids and water jets for young adventurers.",
				CapacityPerCycle:  20,
				CycleMinutes:      intPtr(10),
				MinHeightCM:       intPtr(80),
				MaxHeightCM:       intPtr(120),
				MinAge:            intPtr(4),
				CompanionUntilAge: intPtr(8),
				Kind:              "Kids",
				MapLocation:       "Aqua Park, Blue Sector",
				ImagePath:         "assets/attraction_rio_bravo_kids.png",
				Status:            model.AttractionOperational,
				LastMaintenance:   "2025-04-20",
				NextMaintenance:   "2025-08-20",
				ThrillLevel:       "Medium",
				Accessibility:     "Accessible. Small children must be accompanied.",
			},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attractions).Error; err != nil {
			return fmt.Errorf("seed attractions: %w", err)
		}

		shows := []model.Show{
			{Name: "The Enchanted Kingdom", Description: "A magical musical with princesses and heroes.", Kind: "Musical", Location: "Main Theater", Schedule: "14:00, 17:00", DurationMinutes: 60, ImageURL: "assets/show_enchanted_kingdom.png", Active: true},
			{Name: "Fire Acrobats", Description: "Extreme performances with fire and lights.", Kind: "Performance", Location: "Thrill Arena", Schedule: "20:00", DurationMinutes: 45, ImageURL: "assets/show_fire_acrobats.png", Active: true},
			{Name: "Character Parade", Description: "A parade with every character in the park.", Kind: "Parade", Location: "Main Street", Schedule: "16:00", DurationMinutes: 30, ImageURL: "assets/show_character_parade.png", Active: true},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&shows).Error; err != nil {
			return fmt.Errorf("seed shows: %w", err)
		}

		parkInfo := []model.ParkInfo{
			{Key: "about_us", Title: "About Infinity Park", Content: "Infinity Park is your destination for limitless fun. Opened in 2020, the park offers thrilling rides, spectacular shows and unforgettable experiences for the whole family."},
			{Key: "general_rules", Title: "General Park Rules", Content: "Outside food and drinks are not allowed (except water and baby food). Respect the queues and staff instructions. No smoking outside designated areas."},
			{Key: "opening_hours", Title: "Opening Hours", Content: "Check the opening hours section for up-to-date details, including special days and holidays."},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&parkInfo).Error; err != nil {
			return fmt.Errorf("seed park info: %w", err)
		}

		foodCourts := []model.FoodCourt{
			{Name: "Burger Mania", Description: "The best burgers in the park!", Cuisine: "Fast Food", MapLocation: "Central Food Court", OpeningHours: "10:00 - 21:30", LogoURL: "assets/food_burger_mania.png", Active: true},
			{Name: "Sweet Dream", Description: "Desserts, cakes and coffee.", Cuisine: "Bakery", MapLocation: "Main Street, near the Ferris Wheel", OpeningHours: "11:00 - 19:00", LogoURL: "assets/food_sweet_dream.png", Active: true},
			{Name: "Tropical Refreshments", Description: "Fresh juices, smoothies and coconut water.", Cuisine: "Drinks", MapLocation: "Aqua Park entrance", OpeningHours: "10:00 - 17:00", LogoURL: "assets/food_tropical_refreshments.png", Active: true},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&foodCourts).Error; err != nil {
			return fmt.Errorf("seed food courts: %w", err)
		}

		menus := map[string][]model.MenuItem{
			"Burger Mania": {
				{Name: "Classic Cheeseburger", Description: "Bun, beef patty, cheese, lettuce, tomato and house sauce.", Price: decimal.RequireFromString("25.50"), Category: "Sandwiches", Available: true, ImageURL: "assets/item_cheeseburger.png"},
				{Name: "Medium Fries", Description: "A generous portion of crispy fries.", Price: decimal.NewFromInt(12), Category: "Sides", Available: true, ImageURL: "assets/item_fries.png"},
				{Name: "Canned Soda", Description: "Cola, guarana or orange.", Price: decimal.NewFromInt(8), Category: "Drinks", Available: true},
			},
			"Sweet Dream": {
				{Name: "Chocolate Cake Slice", Description: "A generous slice of frosted chocolate cake.", Price: decimal.NewFromInt(15), Category: "Cakes", Available: true, ImageURL: "assets/item_chocolate_cake.png"},
				{Name: "Espresso", Description: "Strong and aromatic coffee.", Price: decimal.NewFromInt(7), Category: "Coffee", Available: true},
			},
		}
		for courtName, items := range menus {
			var court model.FoodCourt
			if err := tx.Where("name = ?", courtName).First(&court).Error; err != nil {
				return fmt.Errorf("find food court %s: %w", courtName, err)
			}
			for i := range items {
				items[i].FoodCourtID = court.ID
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error; err != nil {
				return fmt.Errorf("seed menu for %s: %w", courtName, err)
			}
		}

		notices := []model.Notice{
			{
				Title:       "Roller Coaster Maintenance",
				Message:     "The Alpha Roller Coaster will be under scheduled maintenance from 12/05/2025 to 17/05/2025. Thank you for understanding.",
				Kind:        model.NoticeInformative,
				PublishedAt: time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC),
				ExpiresAt:   timePtr(time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)),
				Active:      true,
			},
			{
				Title:       "Special Closing Show",
				Message:     "This Saturday there is a special fireworks show at 21:30 in the Central Square!",
				Kind:        model.NoticeAlert,
				PublishedAt: time.Date(2025, 5, 13, 9, 0, 0, 0, time.UTC),
				ExpiresAt:   timePtr(time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)),
				Active:      true,
			},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&notices).Error; err != nil {
			return fmt.Errorf("seed notices: %w", err)
		}

		return nil
	})
}

func timePtr(t time.Time) *time.Time { return &t }
