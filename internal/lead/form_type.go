package lead

// FormType tags which UI surface produced a lead.
type FormType string

const (
	FormTypeHero             FormType = "hero"
	FormTypeCompact          FormType = "compact"
	FormTypeContact          FormType = "contact"
	FormTypeMandatoryInquiry FormType = "mandatory-inquiry"
	FormTypeGeneral          FormType = "general"
)

// surfacePolicy captures what a given form surface demands of its input
// and which side effects a successful submission triggers.
type surfacePolicy struct {
	RequiresMessage   bool
	RequiresConsent   bool
	DownloadsBrochure bool
	ForcesConsent     bool
}

var surfacePolicies = map[FormType]surfacePolicy{
	FormTypeHero:             {RequiresConsent: true, DownloadsBrochure: true},
	FormTypeCompact:          {RequiresConsent: true, DownloadsBrochure: true},
	FormTypeContact:          {RequiresMessage: true},
	FormTypeMandatoryInquiry: {ForcesConsent: true},
}

// policyFor resolves the surface policy. Unknown tags are accepted and
// treated as general inquiries with no extra requirements.
func policyFor(formType FormType) (FormType, surfacePolicy) {
	if formType == "" {
		formType = FormTypeGeneral
	}
	if p, ok := surfacePolicies[formType]; ok {
		return formType, p
	}
	return formType, surfacePolicy{}
}
