package repositories

import (
	"errors"

	"reachiq/internal/models"

	"gorm.io/gorm"
)

var ErrDirectoryEntryNotFound = errors.New("directory entry not found")

type DirectoryRepository interface {
	AddEmail(entry *models.EmailDirectoryEntry) error
	ListEmails(userID string) ([]models.EmailDirectoryEntry, error)
	DeleteEmail(id, userID string) error

	AddNumber(entry *models.NumberDirectoryEntry) error
	ListNumbers(userID string) ([]models.NumberDirectoryEntry, error)
	DeleteNumber(id, userID string) error
}

type DirectoryRepositoryImpl struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &DirectoryRepositoryImpl{db: db}
}

func (r *DirectoryRepositoryImpl) AddEmail(entry *models.EmailDirectoryEntry) error {
	return r.db.Create(entry).Error
}

func (r *DirectoryRepositoryImpl) ListEmails(userID string) ([]models.EmailDirectoryEntry, error) {
	var entries []models.EmailDirectoryEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *DirectoryRepositoryImpl) DeleteEmail(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.EmailDirectoryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDirectoryEntryNotFound
	}
	return nil
}

func (r *DirectoryRepositoryImpl) AddNumber(entry *models.NumberDirectoryEntry) error {
	return r.db.Create(entry).Error
}

func (r *DirectoryRepositoryImpl) ListNumbers(userID string) ([]models.NumberDirectoryEntry, error) {
	var entries []models.NumberDirectoryEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *DirectoryRepositoryImpl) DeleteNumber(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.NumberDirectoryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDirectoryEntryNotFound
	}
	return nil
}
