package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/overtime"
)

// OvertimeRepository implements the overtime.Repository interface using GORM
type OvertimeRepository struct {
	db *gorm.DB
}

func NewOvertimeRepository(db *gorm.DB) overtime.Repository {
	return &OvertimeRepository{db: db}
}

func (r *OvertimeRepository) Create(entry *overtime.Overtime) error {
	return r.db.Create(entry).Error
}

func (r *OvertimeRepository) GetByID(id string) (*overtime.Overtime, error) {
	var entry overtime.Overtime
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *OvertimeRepository) GetAll() ([]*overtime.Overtime, error) {
	var entries []*overtime.Overtime
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *OvertimeRepository) Update(entry *overtime.Overtime) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(entry).Error
}

func (r *OvertimeRepository) UpdateStatus(id string, status string) error {
	return r.db.Model(&overtime.Overtime{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *OvertimeRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&overtime.Overtime{}).Error
}
