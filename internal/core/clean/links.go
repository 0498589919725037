package clean

import "regexp"

var (
	emailRe = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9\-]+(?:\.[a-z0-9\-]+)+`)
	urlRe   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	// bare domains only for the TLDs that show up in marketplace reviews
	domainRe = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9\-]*(?:\.[a-z0-9\-]+)*\.(?:com|net|org|id|co|io|ly|me|app|shop)\b(?:/\S*)?`)
)

// StripLinksAndEmails replaces every URL and e-mail address with one space
func StripLinksAndEmails(text string) string {
	if text == "" {
		return ""
	}
	text = emailRe.ReplaceAllString(text, " ")
	text = urlRe.ReplaceAllString(text, " ")
	return domainRe.ReplaceAllString(text, " ")
}
