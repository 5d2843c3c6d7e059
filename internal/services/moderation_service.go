package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nextiwant/wishlist-backend/internal/domain"
)

// ContentFilter screens user-written text before it is stored.
type ContentFilter interface {
	Check(text string) error
}

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nudes",
	"scam", "scammer", "phishing", "malware",
}

var rejectionMessages = map[string]string{
	"inappropriate_language":   "Your comment contains inappropriate language.",
	"contact_info_not_allowed": "Contact information is not allowed in comments.",
	"spam_detected":            "Your comment appears to be spam.",
	"excessive_caps":           "Please avoid using excessive capital letters.",
}

// ModerationFilter rejects profanity, contact details and obvious spam.
// Links are allowed since comments often point at a product.
type ModerationFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewModerationFilter() *ModerationFilter {
	f := &ModerationFilter{
		bannedWordRegexps:   make([]*regexp.Regexp, 0, len(BannedWords)),
		emailPattern:        regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		phonePattern:        regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		repeatedCharPattern: repeatedRunPattern("abcdefghijklmnopqrstuvwxyz!?.", 6),
		allCapsPattern:      regexp.MustCompile(`\b[A-Z]{5,}\b`),
	}
	for _, word := range BannedWords {
		f.bannedWordRegexps = append(f.bannedWordRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// Classify returns "" for acceptable text, otherwise a rejection reason.
func (f *ModerationFilter) Classify(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return "inappropriate_language"
		}
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		return "contact_info_not_allowed"
	}
	if f.repeatedCharPattern.MatchString(text) {
		return "spam_detected"
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return "excessive_caps"
	}
	return ""
}

func (f *ModerationFilter) Check(text string) error {
	reason := f.Classify(text)
	if reason == "" {
		return nil
	}
	return domain.Validation(rejectionMessages[reason])
}

// repeatedRunPattern matches any of chars repeated at least n times. RE2 has
// no backreferences, so every run is spelled out.
func repeatedRunPattern(chars string, n int) *regexp.Regexp {
	alts := make([]string, 0, len(chars))
	for _, c := range chars {
		alts = append(alts, fmt.Sprintf("%s{%d,}", regexp.QuoteMeta(string(c)), n))
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(alts, "|") + `)`)
}
