package legacy

// Resume is the subset of a JSON Resume document the migration reads.
type Resume struct {
	Basics       ResumeBasics        `json:"basics"`
	Education    []ResumeEducation   `json:"education"`
	Work         []ResumeWork        `json:"work"`
	Publications []ResumePublication `json:"publications"`
	Awards       []ResumeAward       `json:"awards"`
	Skills       []ResumeSkill       `json:"skills"`
}

type ResumeBasics struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	URL      string          `json:"url"`
	Location *ResumeLocation `json:"location"`
	Profiles []ResumeProfile `json:"profiles"`
}

type ResumeLocation struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryCode string `json:"countryCode"`
}

type ResumeProfile struct {
	Network  string `json:"network"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

type ResumeEducation struct {
	Institution string   `json:"institution"`
	Area        string   `json:"area"`
	StudyType   string   `json:"studyType"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Courses     []string `json:"courses"`
}

type ResumeWork struct {
	Name       string   `json:"name"`
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	Location   string   `json:"location"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

type ResumePublication struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	ReleaseDate string `json:"releaseDate"`
	URL         string `json:"url"`
	Website     string `json:"website"`
}

type ResumeAward struct {
	Title   string `json:"title"`
	Awarder string `json:"awarder"`
	Date    string `json:"date"`
}

type ResumeSkill struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}
