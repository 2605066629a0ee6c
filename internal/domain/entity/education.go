package entity

// EducationContent is the static text shown next to the assessment
type EducationContent struct {
	Title            string         `yaml:"title" json:"title"`
	Tagline          string         `yaml:"tagline" json:"tagline"`
	Instructions     string         `yaml:"instructions" json:"instructions"`
	PreventionTitle  string         `yaml:"prevention_title" json:"prevention_title"`
	PreventionTips   []Tip          `yaml:"prevention_tips" json:"prevention_tips"`
	EmergencyContact string         `yaml:"emergency_contact" json:"emergency_contact"`
	LearnMore        Link           `yaml:"learn_more" json:"learn_more"`
	Verdicts         VerdictContent `yaml:"verdicts" json:"verdicts"`
}

type Tip struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type VerdictContent struct {
	HighRisk VerdictMessage `yaml:"high_risk" json:"high_risk"`
	LowRisk  VerdictMessage `yaml:"low_risk" json:"low_risk"`
}

type VerdictMessage struct {
	Headline string `yaml:"headline" json:"headline"`
	Message  string `yaml:"message" json:"message"`
	ImageURL string `yaml:"image_url" json:"image_url"`
}

// MessageFor returns the text shown for the given verdict
func (c *EducationContent) MessageFor(v Verdict) VerdictMessage {
	if v == VerdictHighRisk {
		return c.Verdicts.HighRisk
	}
	return c.Verdicts.LowRisk
}
