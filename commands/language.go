package commands

import (
	"strings"

	"golang.org/x/text/language"
)

// iso639Set holds the two-letter ISO 639-1 codes Telegram reports in
// User.LanguageCode.
var iso639Set = map[string]struct{}{
	"aa": {}, "ab": {}, "ae": {}, "af": {}, "ak": {}, "am": {}, "an": {},
	"ar": {}, "as": {}, "av": {}, "ay": {}, "az": {}, "ba": {}, "be": {},
	"bg": {}, "bh": {}, "bi": {}, "bm": {}, "bn": {}, "bo": {}, "br": {},
	"bs": {}, "ca": {}, "ce": {}, "ch": {}, "co": {}, "cr": {}, "cs": {},
	"cu": {}, "cv": {}, "cy": {}, "da": {}, "de": {}, "dv": {}, "dz": {},
	"ee": {}, "el": {}, "en": {}, "eo": {}, "es": {}, "et": {}, "eu": {},
	"fa": {}, "ff": {}, "fi": {}, "fj": {}, "fo": {}, "fr": {}, "fy": {},
	"ga": {}, "gd": {}, "gl": {}, "gn": {}, "gu": {}, "gv": {}, "ha": {},
	"he": {}, "hi": {}, "ho": {}, "hr": {}, "ht": {}, "hu": {}, "hy": {},
	"hz": {}, "ia": {}, "id": {}, "ie": {}, "ig": {}, "ii": {}, "ik": {},
	"io": {}, "is": {}, "it": {}, "iu": {}, "ja": {}, "jv": {}, "ka": {},
	"kg": {}, "ki": {}, "kj": {}, "kk": {}, "kl": {}, "km": {}, "kn": {},
	"ko": {}, "kr": {}, "ks": {}, "ku": {}, "kv": {}, "kw": {}, "ky": {},
	"la": {}, "lb": {}, "lg": {}, "li": {}, "ln": {}, "lo": {}, "lt": {},
	"lu": {}, "lv": {}, "mg": {}, "mh": {}, "mi": {}, "mk": {}, "ml": {},
	"mn": {}, "mr": {}, "ms": {}, "mt": {}, "my": {}, "na": {}, "nb": {},
	"nd": {}, "ne": {}, "ng": {}, "nl": {}, "nn": {}, "no": {}, "nr": {},
	"nv": {}, "ny": {}, "oc": {}, "oj": {}, "om": {}, "or": {}, "os": {},
	"pa": {}, "pi": {}, "pl": {}, "ps": {}, "pt": {}, "qu": {}, "rm": {},
	"rn": {}, "ro": {}, "ru": {}, "rw": {}, "sa": {}, "sc": {}, "sd": {},
	"se": {}, "sg": {}, "si": {}, "sk": {}, "sl": {}, "sm": {}, "sn": {},
	"so": {}, "sq": {}, "sr": {}, "ss": {}, "st": {}, "su": {}, "sv": {},
	"sw": {}, "ta": {}, "te": {}, "tg": {}, "th": {}, "ti": {}, "tk": {},
	"tl": {}, "tn": {}, "to": {}, "tr": {}, "ts": {}, "tt": {}, "tw": {},
	"ty": {}, "ug": {}, "uk": {}, "ur": {}, "uz": {}, "ve": {}, "vi": {},
	"vo": {}, "wa": {}, "wo": {}, "xh": {}, "yi": {}, "yo": {}, "za": {},
	"zh": {}, "zu": {},
}

// resolveLanguage reduces an IETF tag like "pt-BR" to its primary subtag
// when that subtag is a known ISO 639-1 code, otherwise "".
func resolveLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		// Telegram occasionally reports malformed tags. Fall back to the
		// raw primary subtag.
		primary, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if _, ok := iso639Set[primary]; ok {
			return primary
		}
		return ""
	}
	base, _ := parsed.Base()
	code := base.String()
	if _, ok := iso639Set[code]; ok {
		return code
	}
	return ""
}
