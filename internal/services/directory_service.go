package services

import (
	"context"
	"errors"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

// DirectoryService manages the user's saved recipient lists. Directories
// are address books only; nothing here counts against plan quotas.
type DirectoryService interface {
	AddEmail(ctx context.Context, userID string, req *dto.AddEmailEntryRequest) (*models.EmailDirectoryEntry, error)
	ListEmails(ctx context.Context, userID string) ([]models.EmailDirectoryEntry, error)
	DeleteEmail(ctx context.Context, userID, id string) error

	AddNumber(ctx context.Context, userID string, req *dto.AddNumberEntryRequest) (*models.NumberDirectoryEntry, error)
	ListNumbers(ctx context.Context, userID string) ([]models.NumberDirectoryEntry, error)
	DeleteNumber(ctx context.Context, userID, id string) error
}

type directoryService struct {
	entries repositories.DirectoryRepository
}

func NewDirectoryService(entries repositories.DirectoryRepository) DirectoryService {
	return &directoryService{entries: entries}
}

func (s *directoryService) AddEmail(ctx context.Context, userID string, req *dto.AddEmailEntryRequest) (*models.EmailDirectoryEntry, error) {
	entry := &models.EmailDirectoryEntry{
		UserID: userID,
		Email:  req.Email,
		Name:   req.Name,
	}
	if err := s.entries.AddEmail(entry); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entry, nil
}

func (s *directoryService) ListEmails(ctx context.Context, userID string) ([]models.EmailDirectoryEntry, error) {
	entries, err := s.entries.ListEmails(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

func (s *directoryService) DeleteEmail(ctx context.Context, userID, id string) error {
	if err := s.entries.DeleteEmail(id, userID); err != nil {
		if errors.Is(err, repositories.ErrDirectoryEntryNotFound) {
			return apperrors.NewNotFoundError("directory", "Directory entry not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *directoryService) AddNumber(ctx context.Context, userID string, req *dto.AddNumberEntryRequest) (*models.NumberDirectoryEntry, error) {
	entry := &models.NumberDirectoryEntry{
		UserID: userID,
		Number: req.Number,
		Name:   req.Name,
	}
	if err := s.entries.AddNumber(entry); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entry, nil
}

func (s *directoryService) ListNumbers(ctx context.Context, userID string) ([]models.NumberDirectoryEntry, error) {
	entries, err := s.entries.ListNumbers(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

func (s *directoryService) DeleteNumber(ctx context.Context, userID, id string) error {
	if err := s.entries.DeleteNumber(id, userID); err != nil {
		if errors.Is(err, repositories.ErrDirectoryEntryNotFound) {
			return apperrors.NewNotFoundError("directory", "Directory entry not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
