package services

import "strings"

// Stripe checkout line items carry no free-form metadata we control, so the
// internal product ID is encoded into the display name at session-creation
// time and parsed back out of the line description in the webhook. Both
// directions live here so they cannot drift apart.
//
// Format: "Product Name [ID:123]"

const productTagPrefix = "[ID:"

// TagProductName appends the product ID marker to a display name.
func TagProductName(name, productID string) string {
	return name + " " + productTagPrefix + productID + "]"
}

// ParseProductTag extracts the product ID marker from a line description.
// It returns the cleaned display name, the product ID, and whether a
// well-formed marker was found. On a missing or malformed marker the
// description is returned unchanged.
func ParseProductTag(description string) (name, productID string, ok bool) {
	start := strings.Index(description, productTagPrefix)
	if start < 0 {
		return description, "", false
	}
	end := strings.Index(description[start:], "]")
	if end < 0 {
		return description, "", false
	}
	end += start

	productID = strings.TrimSpace(description[start+len(productTagPrefix) : end])
	if productID == "" {
		return description, "", false
	}
	name = strings.TrimSpace(description[:start])
	return name, productID, true
}
