package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() Input {
	return Input{
		Name:         "Asha Rao",
		Phone:        "9876543210",
		Email:        "asha@example.com",
		InterestedIn: []string{"3 BHK (Filling Fast)"},
		Agreement:    true,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Input)
		policy   surfacePolicy
		wantErr  string
	}{
		{
			name:   "valid input passes",
			mutate: func(in *Input) {},
		},
		{
			name:    "name too short",
			mutate:  func(in *Input) { in.Name = "A" },
			wantErr: "name",
		},
		{
			name:    "phone too short",
			mutate:  func(in *Input) { in.Phone = "98765" },
			wantErr: "phone",
		},
		{
			name:    "phone with letters",
			mutate:  func(in *Input) { in.Phone = "98765abcde" },
			wantErr: "phone",
		},
		{
			name:    "invalid email",
			mutate:  func(in *Input) { in.Email = "not-an-email" },
			wantErr: "email",
		},
		{
			name:    "empty interests",
			mutate:  func(in *Input) { in.InterestedIn = nil },
			wantErr: "interested_in",
		},
		{
			name:    "sold out option rejected",
			mutate:  func(in *Input) { in.InterestedIn = []string{"2 BHK (Sold Out)"} },
			wantErr: "interested_in",
		},
		{
			name:    "unknown option rejected",
			mutate:  func(in *Input) { in.InterestedIn = []string{"5 BHK Penthouse"} },
			wantErr: "interested_in",
		},
		{
			name: "disabled option rejected among valid ones",
			mutate: func(in *Input) {
				in.InterestedIn = []string{"3 BHK (Filling Fast)", "2 BHK (Sold Out)"}
			},
			wantErr: "interested_in",
		},
		{
			name:    "short message rejected when surface requires one",
			mutate:  func(in *Input) { in.Message = "hi" },
			policy:  surfacePolicy{RequiresMessage: true},
			wantErr: "message",
		},
		{
			name:   "missing message fine when surface does not require one",
			mutate: func(in *Input) { in.Message = "" },
		},
		{
			name:    "missing consent rejected when surface requires it",
			mutate:  func(in *Input) { in.Agreement = false },
			policy:  surfacePolicy{RequiresConsent: true},
			wantErr: "agreement",
		},
		{
			name:   "missing consent fine otherwise",
			mutate: func(in *Input) { in.Agreement = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := validateInput(in, tt.policy)
			if tt.wantErr == "" {
				assert.Nil(t, errs)
				return
			}
			assert.Contains(t, errs, tt.wantErr)
		})
	}
}

func TestPolicyFor(t *testing.T) {
	_, hero := policyFor(FormTypeHero)
	assert.True(t, hero.RequiresConsent)
	assert.True(t, hero.DownloadsBrochure)

	_, contact := policyFor(FormTypeContact)
	assert.True(t, contact.RequiresMessage)
	assert.False(t, contact.DownloadsBrochure)

	_, mandatory := policyFor(FormTypeMandatoryInquiry)
	assert.True(t, mandatory.ForcesConsent)

	// Unknown tags are accepted with no extra requirements.
	formType, unknown := policyFor("popup-banner")
	assert.Equal(t, FormType("popup-banner"), formType)
	assert.Equal(t, surfacePolicy{}, unknown)

	formType, _ = policyFor("")
	assert.Equal(t, FormTypeGeneral, formType)
}

func TestCatalogCopyIsIsolated(t *testing.T) {
	options := Catalog()
	options[0].Disabled = false

	fresh := Catalog()
	assert.True(t, fresh[0].Disabled, "catalog must not be mutable through the returned slice")
}
