package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Interaction
		want Category
	}{
		{
			name: "text input",
			in:   Interaction{Tag: "input"},
			want: CategoryFormField,
		},
		{
			name: "textarea",
			in:   Interaction{Tag: "textarea"},
			want: CategoryFormField,
		},
		{
			name: "checkbox label inside form",
			in:   Interaction{Tag: "label", InsideForm: true},
			want: CategoryFormField,
		},
		{
			name: "element inside open dialog",
			in:   Interaction{Tag: "div", InsideDialog: true},
			want: CategoryFormField,
		},
		{
			name: "element inside popover",
			in:   Interaction{Tag: "span", InsidePopover: true},
			want: CategoryFormField,
		},
		{
			name: "element inside toast",
			in:   Interaction{Tag: "div", InsideToast: true},
			want: CategoryFormField,
		},
		{
			// Precedence: a submit button belongs to its form even
			// though free-standing buttons are gated.
			name: "button inside form",
			in:   Interaction{Tag: "button", InsideForm: true},
			want: CategoryFormField,
		},
		{
			// Precedence: form-field wins over nav for elements that
			// match both.
			name: "input inside nav",
			in:   Interaction{Tag: "input", InsideNav: true},
			want: CategoryFormField,
		},
		{
			name: "nav bar link",
			in:   Interaction{Tag: "a", Href: "https://example.com", InsideNav: true},
			want: CategorySiteNavigation,
		},
		{
			name: "scroll target button",
			in:   Interaction{Tag: "button", ScrollTarget: true},
			want: CategorySiteNavigation,
		},
		{
			name: "external anchor",
			in:   Interaction{Tag: "a", Href: "https://example.com/floor-plans"},
			want: CategoryGatedAction,
		},
		{
			name: "free-standing button",
			in:   Interaction{Tag: "button"},
			want: CategoryGatedAction,
		},
		{
			name: "uppercase tag from the DOM",
			in:   Interaction{Tag: "BUTTON"},
			want: CategoryGatedAction,
		},
		{
			name: "in-page anchor passes through",
			in:   Interaction{Tag: "a", Href: "#amenities"},
			want: CategoryPassThrough,
		},
		{
			name: "anchor without href passes through",
			in:   Interaction{Tag: "a"},
			want: CategoryPassThrough,
		},
		{
			// Ambiguity defaults to pass-through: gating must never
			// trap the visitor.
			name: "plain div passes through",
			in:   Interaction{Tag: "div"},
			want: CategoryPassThrough,
		},
		{
			name: "empty interaction passes through",
			in:   Interaction{},
			want: CategoryPassThrough,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}
