package translation

import "strings"

// SourceLanguage is the language all site copy is written in.
const SourceLanguage = "en"

// SupportedLanguages are the targets the site offers.
var SupportedLanguages = []string{"en", "ne"}

// dictionary holds reviewed translations of fixed UI copy, keyed by target
// then by lowercased English text.
var dictionary = map[string]map[string]string{
	"ne": {
		"home":                "गृहपृष्ठ",
		"about us":            "हाम्रो बारेमा",
		"services":            "सेवाहरू",
		"gallery":             "ग्यालरी",
		"notices":             "सूचनाहरू",
		"notice":              "सूचना",
		"contact us":          "सम्पर्क गर्नुहोस्",
		"our team":            "हाम्रो टोली",
		"shareholders":        "शेयरधनीहरू",
		"businesses":          "व्यवसायहरू",
		"products":            "उत्पादनहरू",
		"apply for loan":      "ऋणको लागि आवेदन दिनुहोस्",
		"open an account":     "खाता खोल्नुहोस्",
		"loan application":    "ऋण आवेदन",
		"account application": "खाता आवेदन",
		"saving account":      "बचत खाता",
		"current account":     "चल्ती खाता",
		"fixed deposit":       "मुद्दती निक्षेप",
		"interest rate":       "ब्याज दर",
		"full name":           "पूरा नाम",
		"email":               "इमेल",
		"phone":               "फोन",
		"address":             "ठेगाना",
		"citizenship number":  "नागरिकता नम्बर",
		"date of birth":       "जन्म मिति",
		"occupation":          "पेशा",
		"monthly income":      "मासिक आय",
		"loan amount":         "ऋण रकम",
		"loan purpose":        "ऋणको उद्देश्य",
		"submit":              "पेश गर्नुहोस्",
		"cancel":              "रद्द गर्नुहोस्",
		"close":               "बन्द गर्नुहोस्",
		"read more":           "थप पढ्नुहोस्",
		"important":           "महत्त्वपूर्ण",
		"mission":             "लक्ष्य",
		"vision":              "दृष्टि",
		"pending":             "विचाराधीन",
		"approved":            "स्वीकृत",
		"rejected":            "अस्वीकृत",
		"don't show again":    "फेरि नदेखाउनुहोस्",
	},
}

func lookup(text, target string) (string, bool) {
	d, ok := dictionary[target]
	if !ok {
		return "", false
	}
	v, ok := d[strings.ToLower(strings.TrimSpace(text))]
	return v, ok
}
