package forms

var (
	Universities = []Option{
		{Value: "uts", Label: "University of Technology Sydney (UTS)"},
	}
	Degrees = []Option{
		{Value: "bcs-honours", Label: "Bachelor of Computing Science (Honours)"},
	}
	Majors = []Option{
		{Value: "enterprise-software", Label: "Enterprise Software Development"},
	}
	SubMajors = []Option{
		{Value: "aws", Label: "AWS Development"},
	}
)

// Selection is the payload of the university selector.
type Selection struct {
	University string `json:"university" validate:"required"`
	Degree     string `json:"degree" validate:"required"`
	Major      string `json:"major" validate:"required"`
	SubMajor   string `json:"subMajor" validate:"required"`
}

// DefaultSelection is the preselected value of every selector.
func DefaultSelection() Selection {
	return Selection{
		University: Universities[0].Value,
		Degree:     Degrees[0].Value,
		Major:      Majors[0].Value,
		SubMajor:   SubMajors[0].Value,
	}
}

// UniversitySelector is the draft of the program selection view. Fields left
// empty by the caller fall back to the preselected defaults.
type UniversitySelector struct {
	Selection
}

func NewUniversitySelector() *UniversitySelector {
	return &UniversitySelector{Selection: DefaultSelection()}
}

func (f *UniversitySelector) Submit() (Selection, error) {
	if err := validateStruct(f.Selection, "Please select your university, degree, major and sub-major."); err != nil {
		return Selection{}, err
	}
	return f.Selection, nil
}
