package settings

type UpdateOrganizationSettingsRequest struct {
	Timezone    string `json:"timezone" binding:"omitempty,max=64"`
	Locale      string `json:"locale" binding:"omitempty,max=10"`
	NotifyEmail *bool  `json:"notify_email"`
	NotifyInApp *bool  `json:"notify_in_app"`
}

type UpdateUserSettingsRequest struct {
	Theme    string `json:"theme" binding:"omitempty,oneof=light dark system"`
	Language string `json:"language" binding:"omitempty,max=10"`
	Density  string `json:"density" binding:"omitempty,oneof=compact comfortable"`
}

type OrganizationSettingsResponse struct {
	Timezone    string `json:"timezone"`
	Locale      string `json:"locale"`
	NotifyEmail bool   `json:"notify_email"`
	NotifyInApp bool   `json:"notify_in_app"`
	UpdatedAt   string `json:"updated_at"`
}

type UserSettingsResponse struct {
	Theme     string `json:"theme"`
	Language  string `json:"language"`
	Density   string `json:"density"`
	UpdatedAt string `json:"updated_at"`
}
