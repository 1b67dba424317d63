package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
)

// maxScore is the upper bound of every numeric score.
const maxScore = 100

// oneYear is the domain age boundary, in days, used by Quality and
// SecurityRisk.
const oneYear = 365

var (
	dottedNamePattern = regexp.MustCompile(`^[a-zA-Z]+\.[a-zA-Z]+`)
	alphaOnlyPattern  = regexp.MustCompile(`^[a-zA-Z]+$`)
	cleanCharsPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	lowerPattern      = regexp.MustCompile(`[a-z]`)
	upperPattern      = regexp.MustCompile(`[A-Z]`)
	digitPattern      = regexp.MustCompile(`[0-9]`)
	separatorPattern  = regexp.MustCompile(`[._-]`)
)

// personalProviders are the large consumer mail providers. An address on
// one of them is credited as a deliberately chosen personal identity.
var personalProviders = map[string]struct{}{
	"gmail.com":   {},
	"outlook.com": {},
	"yahoo.com":   {},
	"icloud.com":  {},
}

// Quality scores how established the address looks. Domain age counts only
// when it is known.
func Quality(id model.EmailIdentity, domain model.DomainProfile, now time.Time) model.ScoreResult {
	username := id.LocalPart
	score := 0
	factors := []string{}

	if age, ok := domain.AgeDays(now); ok && age > oneYear {
		score += 20
		factors = append(factors, fmt.Sprintf("Domain age: %d days", age))
	}

	switch {
	case dottedNamePattern.MatchString(username):
		score += 15
		factors = append(factors, "Professional email pattern")
	case alphaOnlyPattern.MatchString(username):
		score += 10
		factors = append(factors, "Simple email pattern")
	}

	if n := len(username); n >= 6 && n <= 24 {
		score += 10
		factors = append(factors, "Appropriate length")
	}

	variety := 0
	for _, p := range []*regexp.Regexp{lowerPattern, upperPattern, digitPattern, separatorPattern} {
		if p.MatchString(username) {
			variety++
		}
	}
	if variety > 0 {
		score += variety * 5
		factors = append(factors, fmt.Sprintf("Character variety: %d types", variety))
	}

	score = min(score, maxScore)

	level := model.LevelLow
	switch {
	case score > 70:
		level = model.LevelHigh
	case score > 40:
		level = model.LevelMedium
	}

	return model.ScoreResult{
		Score:   score,
		Points:  float64(score),
		Level:   level,
		Factors: factors,
	}
}

// Professional scores how likely the address is a professional identity.
// The digit rule looks at the raw local part, so a birth year stripped from
// the name fragments still counts against it.
func Professional(id model.EmailIdentity) model.ScoreResult {
	username := id.LocalPart
	score := 0
	factors := []string{}

	if len(id.NameFragments) == 2 && len(id.NameFragments[0]) > 2 && len(id.NameFragments[1]) > 2 {
		score += 25
		factors = append(factors, "Full name format (firstname.lastname)")
	}

	if _, ok := personalProviders[strings.ToLower(id.Domain)]; ok {
		score += 15
		factors = append(factors, fmt.Sprintf("Professional domain (%s)", id.Domain))
	}

	if n := len(username); n >= 6 && n <= 30 {
		score += 10
		factors = append(factors, "Appropriate length")
	}

	if cleanCharsPattern.MatchString(username) {
		score += 15
		factors = append(factors, "Clean character usage")
	}

	if !digitPattern.MatchString(username) {
		score += 15
		factors = append(factors, "No numeric characters")
	}

	level := model.LevelLow
	switch {
	case score >= 70:
		level = model.LevelHigh
	case score >= 40:
		level = model.LevelMedium
	}

	return model.ScoreResult{
		Score:   score,
		Points:  float64(score),
		Level:   level,
		Factors: factors,
	}
}

// Security risk flags.
const (
	FlagShortUsername   = "Short username (easier to guess)"
	FlagContainsNumbers = "Contains numbers (potential birth year/date)"
	FlagContainsName    = "Contains full name (potential privacy concern)"
	FlagYoungDomain     = "Domain less than 1 year old"
	FlagUnverifiedAge   = "Unable to verify domain age"
)

// Security recommendations.
var (
	riskRecommendations = []string{
		"Use 2FA where available",
		"Avoid using personal information in email",
		"Consider using an email alias for public services",
	}
	noRiskRecommendation = "Good security practices detected"
)

// riskPointsPerFlag converts the number of flags into the numeric score.
const riskPointsPerFlag = 20

// SecurityRisk raises qualitative flags about the address. The level starts
// at Low and only escalates.
func SecurityRisk(id model.EmailIdentity, domain model.DomainProfile, now time.Time) model.ScoreResult {
	username := id.LocalPart
	level := model.LevelLow
	flags := []string{}

	if len(username) < 6 {
		flags = append(flags, FlagShortUsername)
		level = level.Escalate(model.LevelMedium)
	}

	if digitPattern.MatchString(username) {
		flags = append(flags, FlagContainsNumbers)
	}

	if strings.Contains(username, ".") {
		flags = append(flags, FlagContainsName)
		level = level.Escalate(model.LevelMedium)
	}

	switch {
	case domain.WhoisFailed():
		flags = append(flags, FlagUnverifiedAge)
		level = level.Escalate(model.LevelMedium)
	default:
		if age, ok := domain.AgeDays(now); ok && age < oneYear {
			flags = append(flags, FlagYoungDomain)
			level = level.Escalate(model.LevelHigh)
		}
	}

	recommendations := []string{noRiskRecommendation}
	if len(flags) > 0 {
		recommendations = append([]string(nil), riskRecommendations...)
	}

	score := min(len(flags)*riskPointsPerFlag, maxScore)
	return model.ScoreResult{
		Score:           score,
		Points:          float64(score),
		Level:           level,
		Factors:         flags,
		Recommendations: recommendations,
	}
}

// pointsPerPlatform is the visibility added by each platform with a profile.
const pointsPerPlatform = 12.5

// SocialVisibility scores how many platforms expose a profile.
func SocialVisibility(probes []model.ProbeResult) model.ScoreResult {
	factors := []string{}
	points := 0.0
	for _, p := range probes {
		if !p.Found {
			continue
		}
		points += pointsPerPlatform
		factors = append(factors, fmt.Sprintf("Profile found on %s", p.Platform.DisplayName()))
	}
	points = math.Min(points, maxScore)

	var (
		level model.Level
		rec   string
	)
	switch {
	case points >= 75:
		level = model.LevelHigh
		rec = "Consider reducing public social media presence"
	case points >= 50:
		level = model.LevelMedium
		rec = "Review privacy settings on social media"
	default:
		level = model.LevelLow
		rec = "Good privacy practices detected"
	}

	return model.ScoreResult{
		Score:           int(points),
		Points:          points,
		Level:           level,
		Factors:         factors,
		Recommendations: []string{rec},
	}
}

// ScoreAll computes the four scores.
func ScoreAll(id model.EmailIdentity, domain model.DomainProfile, probes []model.ProbeResult, now time.Time) model.Scores {
	quality := Quality(id, domain, now)
	professional := Professional(id)
	risk := SecurityRisk(id, domain, now)
	social := SocialVisibility(probes)

	return model.Scores{
		Quality:          &quality,
		Professional:     &professional,
		SecurityRisk:     &risk,
		SocialVisibility: &social,
	}
}
