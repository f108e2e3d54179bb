package carousel

// Tier is the presentation category derived from viewport width.
type Tier int

const (
	TierMobile Tier = iota
	TierTablet
	TierDesktop
)

func (t Tier) String() string {
	switch t {
	case TierMobile:
		return "mobile"
	case TierTablet:
		return "tablet"
	case TierDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Default width thresholds.
const (
	DefaultTabletWidth  = 768
	DefaultDesktopWidth = 1024
)

// Breakpoints holds the minimum widths at which Tablet and Desktop apply.
type Breakpoints struct {
	Tablet  int
	Desktop int
}

// DefaultBreakpoints returns the 768/1024 thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Tablet: DefaultTabletWidth, Desktop: DefaultDesktopWidth}
}

// ItemsPerView is the number of items visible at once for each tier.
type ItemsPerView struct {
	Mobile  int
	Tablet  int
	Desktop int
}

// DefaultItemsPerView returns 1/2/3.
func DefaultItemsPerView() ItemsPerView {
	return ItemsPerView{Mobile: 1, Tablet: 2, Desktop: 3}
}

// For returns the count for tier t. Non-positive values clamp to 1 so layout
// never divides by zero.
func (c ItemsPerView) For(t Tier) int {
	var n int
	switch t {
	case TierTablet:
		n = c.Tablet
	case TierDesktop:
		n = c.Desktop
	default:
		n = c.Mobile
	}
	if n < 1 {
		return 1
	}
	return n
}

// BreakpointResolver maps a viewport width to a tier and a visible-item count.
type BreakpointResolver struct {
	breakpoints Breakpoints
	perView     ItemsPerView
}

// NewBreakpointResolver creates a resolver for the given thresholds and
// per-tier counts.
func NewBreakpointResolver(bp Breakpoints, perView ItemsPerView) *BreakpointResolver {
	if bp.Tablet <= 0 {
		bp.Tablet = DefaultTabletWidth
	}
	if bp.Desktop < bp.Tablet {
		bp.Desktop = bp.Tablet
	}
	return &BreakpointResolver{breakpoints: bp, perView: perView}
}

// Tier classifies width. Widths below the tablet threshold, including zero
// and negative widths reported before layout, are Mobile.
func (r *BreakpointResolver) Tier(width int) Tier {
	switch {
	case width >= r.breakpoints.Desktop:
		return TierDesktop
	case width >= r.breakpoints.Tablet:
		return TierTablet
	default:
		return TierMobile
	}
}

// Resolve returns the tier for width and the items visible at that tier.
func (r *BreakpointResolver) Resolve(width int) (Tier, int) {
	t := r.Tier(width)
	return t, r.perView.For(t)
}
