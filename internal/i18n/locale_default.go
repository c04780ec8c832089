//go:build !windows

package i18n

// getPlatformLocales has nothing to report outside Windows; selection
// falls back to the LANG family of environment variables instead.
func getPlatformLocales() []string {
	return nil
}
