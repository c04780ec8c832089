//go:build windows

package i18n

import "golang.org/x/sys/windows"

// getPlatformLocales asks Windows for the user's preferred UI languages,
// falling back to the default locale name when the MUI list is empty.
func getPlatformLocales() []string {
	var locales []string

	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err == nil {
		for _, lang := range langs {
			if lang != "" {
				locales = append(locales, lang)
			}
		}
	}

	if len(locales) == 0 {
		name, err := windows.GetUserDefaultLocaleName()
		if err == nil && name != "" {
			locales = append(locales, name)
		}
	}

	return locales
}
