// Package storescope extracts structured brand information from public
// storefront pages: product catalog, featured products, policies, FAQs,
// social handles, contact details and navigational links.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package storescope
