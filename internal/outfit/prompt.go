// internal/outfit/prompt.go
package outfit

import (
	"fmt"
	"strconv"
	"strings"
)

const maxPromptDescription = 120

// Prompt is the instruction pair handed to a Completer.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = `You are a professional fashion stylist assembling complete outfits from a fixed product catalog.
You only use products from the candidate lists you are given and you reference them by the exact id shown.
You answer with a single JSON object and nothing else.`

// BuildPrompt renders the candidate pool, profile and feedback into the
// instruction sent to the generative service.
func BuildPrompt(pool CandidatePool, profile UserProfile, feedback []Feedback, batchSize int) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Create exactly %d different outfits for the occasion %q.\n", batchSize, profile.Occasion)
	b.WriteString("Each outfit must contain exactly one top, one bottom and one pair of shoes, chosen from the lists below and referenced by \"id\" exactly as given.\n")
	b.WriteString("Each product id may be used at most once across all outfits: never repeat a top, a bottom or a pair of shoes.\n")

	r := profile.PriceRange
	if r.IsUnlimited {
		fmt.Fprintf(&b, "Budget per outfit: at least %s, no upper limit.\n", formatPrice(r.Min))
	} else {
		fmt.Fprintf(&b, "Budget per outfit: between %s and %s total.\n", formatPrice(r.Min), formatPrice(r.Max))
	}

	if len(profile.StyleKeywords) > 0 {
		fmt.Fprintf(&b, "Style preferences: %s.\n", strings.Join(profile.StyleKeywords, ", "))
	}
	if cs := profile.ColorStrategy; cs != nil {
		if len(cs.Primary) > 0 {
			fmt.Fprintf(&b, "Preferred colors: %s.\n", strings.Join(cs.Primary, ", "))
		}
		if len(cs.Avoid) > 0 {
			fmt.Fprintf(&b, "Colors to avoid: %s.\n", strings.Join(cs.Avoid, ", "))
		}
	}
	if bp := profile.BodyProfile; bp != nil {
		writeBodyProfile(&b, bp)
	}

	writeCandidates(&b, "TOPS", pool.Tops)
	writeCandidates(&b, "BOTTOMS", pool.Bottoms)
	writeCandidates(&b, "SHOES", pool.Shoes)

	if len(feedback) > 0 {
		writeFeedback(&b, feedback)
	}

	fmt.Fprintf(&b, `
Respond with JSON of this shape, with exactly %d entries in "outfits":
{"outfits":[{"outfitNumber":1,"name":"...","top":{"id":"..."},"bottom":{"id":"..."},"shoes":{"id":"..."},"totalPrice":0,"whyItWorks":"...","stylistNotes":["..."],"confidenceScore":0}]}
`, batchSize)

	return Prompt{System: systemPrompt, User: b.String()}
}

func writeBodyProfile(b *strings.Builder, bp *BodyProfile) {
	var parts []string
	if bp.BodyType != "" {
		parts = append(parts, "body type "+bp.BodyType)
	}
	if bp.PreferredFit != "" {
		parts = append(parts, "prefers a "+bp.PreferredFit+" fit")
	}
	if bp.HeightCM > 0 {
		parts = append(parts, strconv.Itoa(bp.HeightCM)+" cm tall")
	}
	if bp.AvoidAreas != "" {
		parts = append(parts, "wants to de-emphasize "+bp.AvoidAreas)
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, "Body profile: %s.\n", strings.Join(parts, "; "))
	}
}

func writeCandidates(b *strings.Builder, title string, products []Product) {
	fmt.Fprintf(b, "\n%s (%d, best match first):\n", title, len(products))
	for _, p := range products {
		fmt.Fprintf(b, "- id=%s | %s | %s | %s | %s | relevance %.0f",
			p.ID, p.Name, formatPrice(p.Price), p.Brand, p.Color, p.RelevanceScore)
		if d := truncate(p.Description, maxPromptDescription); d != "" {
			b.WriteString(" | " + d)
		}
		b.WriteString("\n")
	}
}

func writeFeedback(b *strings.Builder, feedback []Feedback) {
	b.WriteString("\nPast feedback from this user (lean toward what they liked, away from what they disliked):\n")
	for _, f := range feedback {
		verdict := "DISLIKED"
		if f.Liked {
			verdict = "LIKED"
		}
		fmt.Fprintf(b, "- %s %q", verdict, f.OutfitName)
		if len(f.ItemNames) > 0 {
			fmt.Fprintf(b, " (%s)", strings.Join(f.ItemNames, ", "))
		}
		if f.Reason != "" {
			fmt.Fprintf(b, ": %s", f.Reason)
		}
		b.WriteString("\n")
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
