package gate

import "strings"

// Category of a pointer interaction. Only gated actions are intercepted;
// everything else passes through untouched.
type Category int

const (
	// CategoryFormField: inputs, selects, anything inside a form or an
	// open dialog/popover/toast. Never intercepted.
	CategoryFormField Category = iota
	// CategorySiteNavigation: the top navigation bar and scroll-target
	// elements. Never intercepted.
	CategorySiteNavigation
	// CategoryGatedAction: external links and free-standing buttons.
	// Rerouted through RequestGatedAction while the gate is closed.
	CategoryGatedAction
	// CategoryPassThrough: nothing matched confidently. Gating must
	// never trap a user, so the interaction proceeds natively.
	CategoryPassThrough
)

func (c Category) String() string {
	switch c {
	case CategoryFormField:
		return "form-field"
	case CategorySiteNavigation:
		return "site-navigation"
	case CategoryGatedAction:
		return "gated-action"
	default:
		return "pass-through"
	}
}

// Interaction describes a clicked element the way the frontend reports
// it: its tag, href, and the ancestor containers it sits in.
type Interaction struct {
	Tag           string `json:"tag"`
	Href          string `json:"href"`
	InsideForm    bool   `json:"inside_form"`
	InsideDialog  bool   `json:"inside_dialog"`
	InsidePopover bool   `json:"inside_popover"`
	InsideToast   bool   `json:"inside_toast"`
	InsideNav     bool   `json:"inside_nav"`
	ScrollTarget  bool   `json:"scroll_target"`
}

// Classify resolves an interaction to exactly one category. The order
// matters: membership is not mutually exclusive by tag alone (a button
// inside a form must resolve to form-field even though buttons are
// otherwise gated), so form-field wins over site-navigation, which wins
// over gated-action.
func Classify(in Interaction) Category {
	tag := strings.ToLower(in.Tag)

	switch tag {
	case "input", "textarea", "select", "label", "option":
		return CategoryFormField
	}
	if in.InsideForm || in.InsideDialog || in.InsidePopover || in.InsideToast {
		return CategoryFormField
	}

	if in.InsideNav || in.ScrollTarget {
		return CategorySiteNavigation
	}

	if tag == "a" && in.Href != "" && !strings.HasPrefix(in.Href, "#") {
		return CategoryGatedAction
	}
	if tag == "button" {
		return CategoryGatedAction
	}

	return CategoryPassThrough
}
