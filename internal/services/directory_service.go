package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrMailRequired    = errors.New("mail is required")
	ErrProfileNotFound = errors.New("directory entry not found")
)

// DirectoryService manages the shared user directory. Entries are not
// tied to the signed-in identity.
type DirectoryService struct {
	profileRepo repository.ProfileRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(profileRepo repository.ProfileRepository) *DirectoryService {
	return &DirectoryService{
		profileRepo: profileRepo,
	}
}

// List returns the full directory, oldest first.
func (s *DirectoryService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}
	return profiles, nil
}

// AddInput represents a submitted directory form.
type AddInput struct {
	Name string
	Mail string
	Dorm bool
}

// Add creates a new directory entry. Name and mail are required.
func (s *DirectoryService) Add(ctx context.Context, input AddInput) (*models.Profile, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	mail := strings.TrimSpace(input.Mail)
	if mail == "" {
		return nil, ErrMailRequired
	}

	profile := &models.Profile{
		Name: name,
		Mail: mail,
		Dorm: input.Dorm,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create directory entry: %w", err)
	}
	return profile, nil
}

// Get returns a single directory entry, used by the delete
// confirmation page.
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find directory entry: %w", err)
	}
	return profile, nil
}

// Delete removes a directory entry by id. Confirmation is the
// caller's responsibility.
func (s *DirectoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.profileRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to find directory entry: %w", err)
	}
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete directory entry: %w", err)
	}
	return nil
}

// Find fetches the full directory and keeps the entries whose name
// contains keyword as a case-insensitive substring. An empty keyword
// returns the full snapshot.
func (s *DirectoryService) Find(ctx context.Context, keyword string) ([]models.Profile, error) {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}
	return FilterByName(profiles, keyword), nil
}

// FilterByName returns the entries of snapshot whose name contains
// keyword, ignoring case. It is a pure function of its arguments.
func FilterByName(snapshot []models.Profile, keyword string) []models.Profile {
	if keyword == "" {
		return snapshot
	}

	kw := strings.ToLower(keyword)
	filtered := make([]models.Profile, 0, len(snapshot))
	for _, p := range snapshot {
		if strings.Contains(strings.ToLower(p.Name), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
