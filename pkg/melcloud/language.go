package melcloud

import (
	"fmt"
	"sort"
	"strings"
)

// languageCodes maps locale tags to the integer codes the login endpoint
// understands.
var languageCodes = map[string]int{
	"en": 0,
	"bg": 1,
	"cs": 2,
	"da": 3,
	"de": 4,
	"et": 5,
	"es": 6,
	"fr": 7,
	"hy": 8,
	"lv": 9,
	"lt": 10,
	"hu": 11,
	"nl": 12,
	"no": 13,
	"pl": 14,
	"pt": 15,
	"ru": 16,
	"fi": 17,
	"sv": 18,
	"it": 19,
	"uk": 20,
	"tr": 21,
	"el": 22,
	"hr": 23,
	"ro": 24,
	"sl": 25,
}

// LanguageCode resolves a locale tag to its login code.
func LanguageCode(tag string) (int, error) {
	code, ok := languageCodes[strings.ToLower(tag)]
	if !ok {
		return 0, fmt.Errorf("melcloud: unsupported language %q", tag)
	}
	return code, nil
}

// SupportedLanguages lists the valid locale tags in alphabetical order.
func SupportedLanguages() []string {
	tags := make([]string, 0, len(languageCodes))
	for tag := range languageCodes {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
