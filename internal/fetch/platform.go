package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose page layout is known.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"linkedin.com", PlatformLinkedIn},
	{"ashbyhq.com", PlatformAshby},
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// genericContentSelectors are tried after any platform-specific ones.
var genericContentSelectors = []string{
	".job-description",
	"#job-description",
	".job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

// ContentSelectors returns selectors for a platform's description container, most specific first.
func ContentSelectors(platform Platform) []string {
	var specific []string
	switch platform {
	case PlatformGreenhouse:
		specific = []string{".job__description", ".job-post-container", "#content"}
	case PlatformLever:
		specific = []string{".posting-page", ".section-wrapper.page-full-width"}
	case PlatformWorkday:
		specific = []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}
	case PlatformLinkedIn:
		specific = []string{".show-more-less-html__markup", ".description__text"}
	case PlatformAshby:
		specific = []string{"[class*='descriptionText']"}
	}
	return append(specific, genericContentSelectors...)
}

// NoiseSelectors returns selectors for elements removed before extraction:
// application forms, EEO notices, share widgets and cookie banners.
func NoiseSelectors(platform Platform) []string {
	noise := []string{
		"form",
		".application-form",
		"#application-form",
		".eeo-statement",
		".voluntary-disclosure",
		".social-share",
		".cookie-banner",
		".cookie-consent",
	}

	switch platform {
	case PlatformGreenhouse:
		noise = append(noise, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		noise = append(noise, ".posting-apply", ".apply-section")
	case PlatformWorkday:
		noise = append(noise, "[data-automation-id='applyButton']")
	case PlatformLinkedIn:
		noise = append(noise, ".sign-in-modal", ".similar-jobs")
	}
	return noise
}
