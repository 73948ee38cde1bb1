package dto

import (
	"github.com/skawamoto/campusboard/internal/models"
)

// Residency labels shown in the directory tables.
const (
	DormLabelResident = "resident"
	DormLabelCommuter = "commuter"
)

// ProfileView represents a directory row.
type ProfileView struct {
	ID   string
	Name string
	Mail string
	Dorm string
}

// ToProfileView converts a Profile model to a ProfileView
func ToProfileView(profile models.Profile) ProfileView {
	dorm := DormLabelCommuter
	if profile.Dorm {
		dorm = DormLabelResident
	}
	return ProfileView{
		ID:   profile.ID,
		Name: profile.Name,
		Mail: profile.Mail,
		Dorm: dorm,
	}
}

// ToProfileViews converts a slice of profiles for rendering
func ToProfileViews(profiles []models.Profile) []ProfileView {
	views := make([]ProfileView, len(profiles))
	for i, profile := range profiles {
		views[i] = ToProfileView(profile)
	}
	return views
}
