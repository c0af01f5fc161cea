// Package licenses embeds the license texts shown by the about screens.
package licenses

import _ "embed"

//go:embed embedded/LICENSE
var licenseText string

//go:embed embedded/THIRD_PARTY_NOTICES.md
var noticesText string

//go:embed embedded/DISCLAIMER.md
var disclaimerText string

func LicenseText() string {
	return licenseText
}

func NoticesText() string {
	return noticesText
}

func DisclaimerText() string {
	return disclaimerText
}
