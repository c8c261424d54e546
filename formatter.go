package storescope

import (
	"fmt"
	"sort"
	"strings"
)

// FormatInsights renders insights as a markdown digest for display or
// LLM context. Empty facets are omitted.
func FormatInsights(in *BrandInsights) string {
	if in == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", in.BrandName)
	fmt.Fprintf(&b, "Website: %s\n", in.WebsiteURL)
	fmt.Fprintf(&b, "Products: %d\n", in.TotalProducts)
	if !in.ExtractedAt.IsZero() {
		fmt.Fprintf(&b, "Extracted: %s\n", in.ExtractedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if in.BrandDescription != nil {
		b.WriteString("\n## About\n\n")
		b.WriteString(*in.BrandDescription)
		b.WriteString("\n")
	}

	if len(in.HeroProducts) > 0 {
		b.WriteString("\n## Featured products\n\n")
		for _, p := range in.HeroProducts {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Title, p.Handle)
		}
	}

	if len(in.ProductCatalog) > 0 {
		b.WriteString("\n## Catalog\n\n")
		for _, p := range in.ProductCatalog {
			price := "n/a"
			if p.Price != nil {
				price = *p.Price
			}
			fmt.Fprintf(&b, "- %s: %s\n", p.Title, price)
		}
	}

	if in.PrivacyPolicy != nil {
		b.WriteString("\n## Privacy policy\n\n")
		b.WriteString(*in.PrivacyPolicy)
		b.WriteString("\n")
	}
	if in.ReturnRefundPolicy != nil {
		b.WriteString("\n## Return and refund policy\n\n")
		b.WriteString(*in.ReturnRefundPolicy)
		b.WriteString("\n")
	}

	if len(in.FAQs) > 0 {
		b.WriteString("\n## FAQ\n\n")
		for _, f := range in.FAQs {
			fmt.Fprintf(&b, "**%s**\n%s\n\n", f.Question, f.Answer)
		}
	}

	if len(in.SocialHandles) > 0 {
		b.WriteString("\n## Social\n\n")
		for _, s := range in.SocialHandles {
			fmt.Fprintf(&b, "- %s: %s\n", s.Platform, s.URL)
		}
	}

	c := in.ContactInfo
	if len(c.Emails) > 0 || len(c.Phones) > 0 || c.Address != nil {
		b.WriteString("\n## Contact\n\n")
		for _, e := range c.Emails {
			fmt.Fprintf(&b, "- email: %s\n", e)
		}
		for _, p := range c.Phones {
			fmt.Fprintf(&b, "- phone: %s\n", p)
		}
		if c.Address != nil {
			fmt.Fprintf(&b, "- address: %s\n", *c.Address)
		}
	}

	if len(in.ImportantLinks) > 0 {
		b.WriteString("\n## Links\n\n")
		labels := make([]string, 0, len(in.ImportantLinks))
		for label := range in.ImportantLinks {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(&b, "- %s: %s\n", label, in.ImportantLinks[label])
		}
	}

	return b.String()
}
