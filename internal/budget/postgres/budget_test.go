package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rootslab/opsfinance/internal/budget"
)

func TestBudgetRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BudgetRepository Suite")
}

var _ = Describe("BudgetRepository", func() {
	var (
		db   *gorm.DB
		repo budget.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&budget.Setting{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewBudgetRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Get", func() {
		It("should return nil for an unset key", func() {
			setting, err := repo.Get(budget.GlobalBudgetKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(setting).To(BeNil())
		})
	})

	Describe("Upsert", func() {
		It("should insert on first write", func() {
			Expect(repo.Upsert(budget.GlobalBudgetKey, 5_000_000)).To(Succeed())

			setting, err := repo.Get(budget.GlobalBudgetKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(setting).NotTo(BeNil())
			Expect(setting.Value).To(Equal(int64(5_000_000)))
		})

		It("should overwrite on subsequent writes", func() {
			Expect(repo.Upsert(budget.GlobalBudgetKey, 5_000_000)).To(Succeed())
			Expect(repo.Upsert(budget.GlobalBudgetKey, 8_000_000)).To(Succeed())

			setting, err := repo.Get(budget.GlobalBudgetKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(setting.Value).To(Equal(int64(8_000_000)))

			var count int64
			db.Model(&budget.Setting{}).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})
	})
})
