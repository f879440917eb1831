package models

// Setting keys understood by the core. The settings mapping is open, so other
// keys may be present too.
const (
	SettingTheme            = "theme"
	SettingThemeSetManually = "themeSetManually"
	SettingBaseSalary       = "baseSalary"
	SettingAdvancePayment   = "advancePayment"
	SettingTaxRate          = "taxRate"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultTaxRate is the income tax rate, in percent, used until one is set.
const DefaultTaxRate = 13

// DefaultSettings returns the values applied when a setting has never been written.
func DefaultSettings() map[string]any {
	return map[string]any{
		SettingTheme:            ThemeLight,
		SettingThemeSetManually: false,
		SettingBaseSalary:       0,
		SettingAdvancePayment:   0,
		SettingTaxRate:          DefaultTaxRate,
	}
}
