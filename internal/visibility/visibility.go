// Package visibility turns raw heading geometry into comparable relevance
// scores: how much of each section is on screen, how close it sits to the
// reader's focus, and a composite weight used to pick the single active
// section.
package visibility

import "github.com/mlmathbook/mlmath/internal/docview"

// WeightFactors splits the composite weight between the three signals.
// The factors are expected to sum to 1.0 but this is not enforced; tuning
// is the caller's business.
type WeightFactors struct {
	Visibility float64 `yaml:"visibility" koanf:"visibility"`
	Position   float64 `yaml:"position" koanf:"position"`
	Size       float64 `yaml:"size" koanf:"size"`
}

// Config controls the effective viewport and scoring.
type Config struct {
	HeaderOffset           float64       `yaml:"header_offset" koanf:"header_offset"`
	FooterOffset           float64       `yaml:"footer_offset" koanf:"footer_offset"`
	MinVisibilityThreshold float64       `yaml:"min_visibility_threshold" koanf:"min_visibility_threshold"`
	WeightFactors          WeightFactors `yaml:"weight_factors" koanf:"weight_factors"`
}

// DefaultConfig returns the tuning used by the reader UI.
func DefaultConfig() Config {
	return Config{
		HeaderOffset:           80,
		FooterOffset:           0,
		MinVisibilityThreshold: 0.1,
		WeightFactors: WeightFactors{
			Visibility: 0.6,
			Position:   0.3,
			Size:       0.1,
		},
	}
}

// SectionVisibility is the per-heading score for one observation tick. It is
// recomputed fresh every tick and never persisted.
type SectionVisibility struct {
	ID              string
	Title           string
	Level           int
	Visibility      float64
	IsInView        bool
	DistanceFromTop float64
	Height          float64
	Weight          float64
}

// Calculate scores every heading against the effective viewport
// [HeaderOffset, viewportHeight-FooterOffset]. Result order matches input
// order; malformed boxes degrade to zero scores.
func Calculate(headings []docview.HeadingBox, m docview.Metrics, cfg Config) []SectionVisibility {
	effectiveTop := cfg.HeaderOffset
	effectiveBottom := m.ViewportHeight - cfg.FooterOffset
	effectiveHeight := effectiveBottom - effectiveTop

	out := make([]SectionVisibility, len(headings))
	for i, h := range headings {
		sv := SectionVisibility{
			ID:              h.ID,
			Title:           h.Title,
			Level:           h.Level,
			DistanceFromTop: h.Top,
			Height:          h.Height,
		}

		bottom := h.Top + h.Height
		intersectionTop := max(h.Top, effectiveTop)
		intersectionBottom := min(bottom, effectiveBottom)
		intersectionHeight := max(0, intersectionBottom-intersectionTop)

		if h.Height > 0 {
			sv.Visibility = intersectionHeight / h.Height
		}
		sv.IsInView = sv.Visibility >= cfg.MinVisibilityThreshold

		if effectiveHeight > 0 {
			// Readers focus near the top third of the screen, not the center.
			idealPosition := effectiveTop + effectiveHeight/3
			center := h.Top + h.Height/2
			normalizedDistance := abs(center-idealPosition) / effectiveHeight
			positionScore := max(0, 1-normalizedDistance)

			sizeScore := sizeScore(h.Height, effectiveHeight)

			sv.Weight = sv.Visibility*cfg.WeightFactors.Visibility +
				positionScore*cfg.WeightFactors.Position +
				sizeScore*cfg.WeightFactors.Size
		}

		out[i] = sv
	}
	return out
}

// sizeScore normalizes heading height against the viewport. Regions taller
// than twice the viewport are capped at 0.5 so one giant section cannot
// dominate the weight.
func sizeScore(height, viewportHeight float64) float64 {
	normalized := height / viewportHeight
	if normalized > 2 {
		return 0.5
	}
	return min(normalized, 1)
}

// MostRelevant returns the in-view section with the highest weight, or nil
// when nothing is in view. Ties go to the earlier heading in document order.
func MostRelevant(vis []SectionVisibility) *SectionVisibility {
	var best *SectionVisibility
	for i := range vis {
		if !vis[i].IsInView {
			continue
		}
		if best == nil || vis[i].Weight > best.Weight {
			best = &vis[i]
		}
	}
	return best
}

// InView filters to the sections currently in view, preserving order.
func InView(vis []SectionVisibility) []SectionVisibility {
	var out []SectionVisibility
	for _, sv := range vis {
		if sv.IsInView {
			out = append(out, sv)
		}
	}
	return out
}

// ReadingProgress is the scroll-position fraction of the document traversed.
// A document that fits entirely in the viewport counts as fully read.
func ReadingProgress(m docview.Metrics) float64 {
	scrollable := m.DocumentHeight - m.ViewportHeight
	if scrollable <= 0 {
		return 1
	}
	return min(m.ScrollTop/scrollable, 1)
}

// Next returns the nearest section whose absolute top lies below the reading
// line (scrollTop + headerOffset), or nil at document end.
func Next(vis []SectionVisibility, m docview.Metrics, cfg Config) *SectionVisibility {
	line := m.ScrollTop + cfg.HeaderOffset
	var best *SectionVisibility
	for i := range vis {
		absTop := vis[i].DistanceFromTop + m.ScrollTop
		if absTop <= line {
			continue
		}
		if best == nil || vis[i].DistanceFromTop < best.DistanceFromTop {
			best = &vis[i]
		}
	}
	return best
}

// Previous returns the nearest section whose absolute top lies above the
// reading line, or nil at document start.
func Previous(vis []SectionVisibility, m docview.Metrics, cfg Config) *SectionVisibility {
	line := m.ScrollTop + cfg.HeaderOffset
	var best *SectionVisibility
	for i := range vis {
		absTop := vis[i].DistanceFromTop + m.ScrollTop
		if absTop >= line {
			continue
		}
		if best == nil || vis[i].DistanceFromTop > best.DistanceFromTop {
			best = &vis[i]
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
