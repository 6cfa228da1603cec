package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rootslab/opsfinance/internal/auth"
	"github.com/rootslab/opsfinance/internal/budget"
	budgetPostgres "github.com/rootslab/opsfinance/internal/budget/postgres"
	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/expense"
	"github.com/rootslab/opsfinance/internal/overtime"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expenses", "overtimes", "settings", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		now := time.Now()

		adminEmail := "ops@rootslab.id"
		var count int64
		db.Model(&auth.User{}).Where("email = ?", adminEmail).Count(&count)
		if count == 0 {
			user := &auth.User{
				ID:           uuid.NewString(),
				Email:        adminEmail,
				Name:         "Ops Admin",
				PasswordHash: string(hash),
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := db.Create(user).Error; err != nil {
				log.Fatalf("failed to seed admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		budgetRepo := budgetPostgres.NewBudgetRepository(db)
		if err := budgetRepo.Upsert(budget.GlobalBudgetKey, 10_000_000); err != nil {
			log.Fatalf("failed to seed budget: %v", err)
		}
		fmt.Println("Seeded global budget")

		month := now.Format("2006-01")
		sampleExpenses := []expense.Expense{
			{
				Date:        month + "-03",
				Description: "Langganan internet kantor",
				Requester:   "Ali",
				Amount:      850_000,
				Status:      string(record.StatusApproved),
				Note:        "Bulanan",
			},
			{
				Date:        month + "-07",
				Description: "ATK dan kertas",
				Requester:   "Sari",
				Amount:      320_000,
				Status:      string(record.StatusPending),
			},
			{
				Date:        month + "-12",
				Description: "Perbaikan AC ruang meeting",
				Requester:   "Budi",
				Amount:      1_200_000,
				Status:      string(record.StatusRejected),
				Note:        "Ditunda ke bulan depan",
			},
		}
		for i := range sampleExpenses {
			sampleExpenses[i].ID = uuid.NewString()
			sampleExpenses[i].CreatedAt = now
			sampleExpenses[i].UpdatedAt = now
			if err := db.Create(&sampleExpenses[i]).Error; err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}
		fmt.Printf("Seeded %d expenses\n", len(sampleExpenses))

		sampleOvertimes := []overtime.Overtime{
			{
				Date:         month + "-05",
				EmployeeName: "Ali",
				Days:         2,
				Rate:         250_000,
				Status:       string(record.StatusApproved),
			},
			{
				Date:         month + "-14",
				EmployeeName: "Sari",
				Days:         1,
				Rate:         300_000,
				Status:       string(record.StatusDefault),
				Note:         "Deployment malam",
			},
		}
		for i := range sampleOvertimes {
			sampleOvertimes[i].ID = uuid.NewString()
			sampleOvertimes[i].CreatedAt = now
			sampleOvertimes[i].UpdatedAt = now
			if err := db.Create(&sampleOvertimes[i]).Error; err != nil {
				log.Fatalf("failed to seed overtime: %v", err)
			}
		}
		fmt.Printf("Seeded %d overtime records\n", len(sampleOvertimes))
	},
}
