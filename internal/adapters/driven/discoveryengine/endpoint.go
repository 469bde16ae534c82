package discoveryengine

import "strings"

// ServiceHost is the Discovery Engine API host without a region prefix.
const ServiceHost = "discoveryengine.googleapis.com"

// GlobalLocation is the location served by the unprefixed host.
const GlobalLocation = "global"

// ResolveBaseURL returns the v1 REST root for a location.
//
// "global" maps to the unprefixed host. Any other location contributes the
// text before its first "-" as a region prefix, so "us-central1" and "us" both
// resolve to https://us-discoveryengine.googleapis.com/v1. The prefix is not
// checked against known regions; a bad one surfaces as an HTTP error later.
func ResolveBaseURL(location string) string {
	if location == GlobalLocation {
		return "https://" + ServiceHost + "/v1"
	}
	prefix, _, _ := strings.Cut(location, "-")
	return "https://" + prefix + "-" + ServiceHost + "/v1"
}
