package model

import "strings"

// platformUnknownStr is the string representation for unknown platform values.
const platformUnknownStr = "unknown"

// Platform identifies a site on which a profile can be probed.
type Platform string

// Platform constants. The string value is the stable identifier used in
// configuration files and JSON reports.
const (
	// PlatformUnknown represents an unknown platform.
	PlatformUnknown Platform = ""
	// PlatformLinkedIn represents LinkedIn.
	PlatformLinkedIn Platform = "linkedin"
	// PlatformTwitter represents Twitter/X.
	PlatformTwitter Platform = "twitter"
	// PlatformGitHub represents GitHub.
	PlatformGitHub Platform = "github"
	// PlatformInstagram represents Instagram.
	PlatformInstagram Platform = "instagram"
	// PlatformMedium represents Medium.
	PlatformMedium Platform = "medium"
	// PlatformDevTo represents the Dev.to developer forum.
	PlatformDevTo Platform = "devto"
	// PlatformStackOverflow represents Stack Overflow.
	PlatformStackOverflow Platform = "stackoverflow"
	// PlatformBehance represents Behance.
	PlatformBehance Platform = "behance"
	// PlatformDribbble represents Dribbble.
	PlatformDribbble Platform = "dribbble"
	// PlatformFacebook represents Facebook.
	PlatformFacebook Platform = "facebook"
	// PlatformYouTube represents YouTube.
	PlatformYouTube Platform = "youtube"
	// PlatformReddit represents Reddit.
	PlatformReddit Platform = "reddit"
	// PlatformKaggle represents Kaggle.
	PlatformKaggle Platform = "kaggle"
	// PlatformPyPI represents the Python Package Index.
	PlatformPyPI Platform = "pypi"
	// PlatformNpm represents the npm registry.
	PlatformNpm Platform = "npm"
	// PlatformRubyGems represents RubyGems.
	PlatformRubyGems Platform = "rubygems"
	// PlatformDockerHub represents Docker Hub.
	PlatformDockerHub Platform = "dockerhub"
	// PlatformGitLab represents GitLab.
	PlatformGitLab Platform = "gitlab"
	// PlatformWordPress represents the WordPress.org support forums.
	PlatformWordPress Platform = "wordpress"
)

// Category groups platforms by the kind of footprint they reveal.
type Category string

// Category constants.
const (
	// CategorySocial covers general social networks.
	CategorySocial Category = "social"
	// CategoryProfessional covers professional networks.
	CategoryProfessional Category = "professional"
	// CategoryDeveloper covers code hosting and developer forums.
	CategoryDeveloper Category = "developer"
	// CategoryCreative covers design portfolios and publishing.
	CategoryCreative Category = "creative"
	// CategoryRegistry covers package and container registries.
	CategoryRegistry Category = "registry"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	if p == PlatformUnknown {
		return platformUnknownStr
	}
	return string(p)
}

// IsValid returns true if this is a known platform.
func (p Platform) IsValid() bool {
	_, ok := platformDisplayNames[p]
	return ok
}

// DisplayName returns the human-facing platform name, e.g. "Stack Overflow".
func (p Platform) DisplayName() string {
	if name, ok := platformDisplayNames[p]; ok {
		return name
	}
	return platformUnknownStr
}

// Category returns the footprint category of the platform.
func (p Platform) Category() Category {
	switch p {
	case PlatformLinkedIn:
		return CategoryProfessional
	case PlatformGitHub, PlatformGitLab, PlatformDevTo, PlatformStackOverflow, PlatformKaggle:
		return CategoryDeveloper
	case PlatformMedium, PlatformBehance, PlatformDribbble, PlatformWordPress:
		return CategoryCreative
	case PlatformPyPI, PlatformNpm, PlatformRubyGems, PlatformDockerHub:
		return CategoryRegistry
	default:
		return CategorySocial
	}
}

var platformDisplayNames = map[Platform]string{
	PlatformLinkedIn:      "LinkedIn",
	PlatformTwitter:       "Twitter",
	PlatformGitHub:        "GitHub",
	PlatformInstagram:     "Instagram",
	PlatformMedium:        "Medium",
	PlatformDevTo:         "Dev.to",
	PlatformStackOverflow: "Stack Overflow",
	PlatformBehance:       "Behance",
	PlatformDribbble:      "Dribbble",
	PlatformFacebook:      "Facebook",
	PlatformYouTube:       "YouTube",
	PlatformReddit:        "Reddit",
	PlatformKaggle:        "Kaggle",
	PlatformPyPI:          "PyPI",
	PlatformNpm:           "npm",
	PlatformRubyGems:      "RubyGems",
	PlatformDockerHub:     "Docker Hub",
	PlatformGitLab:        "GitLab",
	PlatformWordPress:     "WordPress",
}

// ParsePlatform converts an identifier or display name to a Platform.
// Matching ignores case, spaces, dots and dashes, so "Stack Overflow",
// "stack-overflow" and "stackoverflow" are equivalent.
func ParsePlatform(s string) Platform {
	key := strings.NewReplacer(" ", "", ".", "", "-", "", "_", "").Replace(strings.ToLower(s))
	switch key {
	case "x":
		return PlatformTwitter
	case "docker":
		return PlatformDockerHub
	}
	for p := range platformDisplayNames {
		if string(p) == key {
			return p
		}
	}
	return PlatformUnknown
}
