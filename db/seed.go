package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDatabase creates a manager account, the plot grid and a few sample
// work days on first boot. It is a no-op once any user exists.
func SeedDatabase() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_MANAGER_PASSWORD")
	if password == "" {
		password = "password123"
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.User{
		Username:     "manager",
		PasswordHash: string(passwordHash),
		Email:        "manager@garden.com",
		FirstName:    "Maria",
		LastName:     "Johnson",
		Phone:        "555-123-4567",
		Address:      "123 Garden Ave",
		Role:         models.RoleManager,
	}

	if err := DB.Create(&manager).Error; err != nil {
		return err
	}

	// Plot grid: areas A-F, eight plots each. Every fourth plot is
	// unavailable (paths, water access), the rest start available.
	areas := []string{"A", "B", "C", "D", "E", "F"}

	for _, area := range areas {
		for i := 1; i <= 8; i++ {
			status := models.PlotAvailable
			if i%4 == 0 {
				status = models.PlotUnavailable
			}

			plotNumber := fmt.Sprintf("%s%d", area, i)

			plot := models.Plot{
				PlotNumber: plotNumber,
				Status:     status,
				Area:       area,
				Size:       "10x10",
				YearlyFee:  5000,
				Notes:      fmt.Sprintf("Plot %s in area %s", plotNumber, area),
			}

			if err := DB.Create(&plot).Error; err != nil {
				return err
			}
		}
	}

	now := time.Now()

	workDays := []models.WorkDay{
		{
			Title:        "Spring Clean-up Work Day",
			Description:  "Help prepare the garden for spring planting. Bring gloves and tools if you have them.",
			Date:         now.AddDate(0, 0, 14),
			StartTime:    "9:00 AM",
			EndTime:      "1:00 PM",
			MaxAttendees: 40,
			CreatedBy:    manager.ID,
		},
		{
			Title:        "Committee Meeting",
			Description:  "Monthly committee meeting to discuss garden operations.",
			Date:         now.AddDate(0, 0, 28),
			StartTime:    "6:30 PM",
			EndTime:      "8:00 PM",
			MaxAttendees: 10,
			CreatedBy:    manager.ID,
		},
		{
			Title:        "Garden Workshop: Companion Planting",
			Description:  "Learn about companion planting techniques to maximize your garden's productivity.",
			Date:         now.AddDate(0, 0, 42),
			StartTime:    "10:00 AM",
			EndTime:      "11:30 AM",
			MaxAttendees: 20,
			CreatedBy:    manager.ID,
		},
	}

	for i := range workDays {
		if err := DB.Create(&workDays[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded initial manager account, plots and work days")
	return nil
}
