package models

import (
	"time"
)

// SiteSettings is a single document in the site_settings collection holding
// the desktop-UI theming knobs.
type SiteSettings struct {
	ID          string    `json:"id" bson:"_id"`
	MenuBarSkin string    `json:"menu_bar_skin" bson:"menu_bar_skin"`
	DockStyle   string    `json:"dock_style" bson:"dock_style"`
	Wallpaper   string    `json:"wallpaper" bson:"wallpaper"`
	AccentColor string    `json:"accent_color" bson:"accent_color"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// SiteSettingsID is the fixed _id of the lone settings document.
const SiteSettingsID = "site_settings"

type SiteSettingsUpdateRequest struct {
	MenuBarSkin string `json:"menu_bar_skin"`
	DockStyle   string `json:"dock_style"`
	Wallpaper   string `json:"wallpaper"`
	AccentColor string `json:"accent_color"`
}
