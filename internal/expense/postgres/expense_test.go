package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/expense"
)

func TestExpenseRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseRepository Suite")
}

var _ = Describe("ExpenseRepository", func() {
	var (
		db   *gorm.DB
		repo expense.Repository
	)

	newExpense := func(id, date string, amount int64) *expense.Expense {
		now := time.Now()
		return &expense.Expense{
			ID:          id,
			Date:        date,
			Description: "Test expense",
			Requester:   "Ali",
			Amount:      amount,
			Status:      "Pending",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&expense.Expense{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewExpenseRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create and GetByID", func() {
		It("should round-trip an expense", func() {
			Expect(repo.Create(newExpense("e1", "2025-01-05", 100_000))).To(Succeed())

			found, err := repo.GetByID("e1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Date).To(Equal("2025-01-05"))
			Expect(found.Amount).To(Equal(int64(100_000)))
		})

		It("should return the sentinel for a missing id", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(Equal(internal.ErrRecordNotFound))
		})
	})

	Describe("GetAll", func() {
		It("should return newest first", func() {
			first := newExpense("e1", "2025-01-01", 100)
			first.CreatedAt = time.Now().Add(-time.Hour)
			Expect(repo.Create(first)).To(Succeed())
			Expect(repo.Create(newExpense("e2", "2025-01-02", 200))).To(Succeed())

			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal("e2"))
		})

		It("should return empty without error on a fresh table", func() {
			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should persist edited fields", func() {
			exp := newExpense("e1", "2025-01-05", 100)
			Expect(repo.Create(exp)).To(Succeed())

			exp.Amount = 900
			exp.Description = "edited"
			Expect(repo.Update(exp)).To(Succeed())

			found, err := repo.GetByID("e1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Amount).To(Equal(int64(900)))
			Expect(found.Description).To(Equal("edited"))
		})
	})

	Describe("UpdateStatus", func() {
		It("should change only the status", func() {
			Expect(repo.Create(newExpense("e1", "2025-01-05", 100))).To(Succeed())

			Expect(repo.UpdateStatus("e1", "Approved")).To(Succeed())

			found, err := repo.GetByID("e1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal("Approved"))
			Expect(found.Amount).To(Equal(int64(100)))
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			Expect(repo.Create(newExpense("e1", "2025-01-05", 100))).To(Succeed())
			Expect(repo.Delete("e1")).To(Succeed())

			_, err := repo.GetByID("e1")
			Expect(err).To(Equal(internal.ErrRecordNotFound))
		})
	})
})
